// Package api serves the task store over HTTP/JSON.
//
// Routes:
//
//	GET    /                 plain-text greeting
//	GET    /api/tasks        all tasks, insertion order
//	GET    /api/tasks/{id}   one task, or 404 {"error":"Task not found"}
//	POST   /api/tasks        create from {text}, 201
//	PUT    /api/tasks/{id}   patch {text, completed}, or 404 {"error":"ID not found"}
//	DELETE /api/tasks/{id}   remove, 204 (absent ids included)
//	GET    /api/dog          random dog image proxied from the upstream API
//
// Anything else answers 404 {"error":"Not found"}.
//
// Bodies may be JSON or urlencoded form data. An {id} that is not an integer
// names no task.
//
// # Errors
//
// Handlers never pick status codes for failures themselves. They return an
// error (usually an *Error carrying a Kind) and writeError maps it through
// StatusFor, which is the only place errors become HTTP statuses.
//
// # Middleware
//
// Every request passes, outermost first, through request id assignment,
// request logging, panic recovery and CORS.
package api
