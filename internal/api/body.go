package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// maxBodyBytes caps request bodies at 1 MiB.
const maxBodyBytes = 1 << 20

// taskBody is the decoded POST/PUT body. Nil fields were not supplied.
type taskBody struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

// decodeTaskBody reads a JSON or urlencoded body. An empty body decodes to
// a taskBody with no fields set.
func decodeTaskBody(w http.ResponseWriter, r *http.Request) (taskBody, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType := "application/json"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return taskBody{}, fmt.Errorf("content type: %w", err)
		}
		mediaType = mt
	}

	switch {
	case mediaType == "application/x-www-form-urlencoded":
		return decodeFormBody(r)
	case mediaType == "application/json", strings.HasSuffix(mediaType, "+json"):
		return decodeJSONBody(r.Body)
	default:
		return taskBody{}, fmt.Errorf("unsupported content type %q", mediaType)
	}
}

func decodeJSONBody(rd io.Reader) (taskBody, error) {
	var body taskBody
	dec := json.NewDecoder(rd)
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return taskBody{}, nil
		}
		return taskBody{}, fmt.Errorf("decode json body: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return taskBody{}, errors.New("decode json body: unexpected data after object")
	}
	return body, nil
}

func decodeFormBody(r *http.Request) (taskBody, error) {
	if err := r.ParseForm(); err != nil {
		return taskBody{}, fmt.Errorf("decode form body: %w", err)
	}

	var body taskBody
	if r.PostForm.Has("text") {
		text := r.PostForm.Get("text")
		body.Text = &text
	}
	if r.PostForm.Has("completed") {
		completed, err := strconv.ParseBool(r.PostForm.Get("completed"))
		if err != nil {
			return taskBody{}, fmt.Errorf("decode form body: completed: %w", err)
		}
		body.Completed = &completed
	}
	return body, nil
}
