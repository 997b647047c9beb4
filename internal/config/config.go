// Package config loads taskstore settings with Viper.
//
// Sources, lowest precedence first: built-in defaults, an optional
// taskstore.yaml, TASKSTORE_* environment variables, and command-line flags
// bound by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/roach88/taskstore/internal/logging"
)

// EnvPrefix is prepended to every environment variable: server.addr is
// read from TASKSTORE_SERVER_ADDR.
const EnvPrefix = "TASKSTORE"

// Config keys.
const (
	KeyServerAddr              = "server.addr"
	KeyServerShutdownTimeout   = "server.shutdown_timeout"
	KeyServerReadHeaderTimeout = "server.read_header_timeout"
	KeyStoreSeedFile           = "store.seed_file"
	KeyDogURL                  = "dog.url"
	KeyDogTimeout              = "dog.timeout"
	KeyCORSAllowedOrigins      = "cors.allowed_origins"
	KeyLogLevel                = "log.level"
	KeyLogFormat               = "log.format"
	KeyAPIURL                  = "api_url"
)

// Config is the resolved configuration.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Dog    DogConfig
	CORS   CORSConfig
	Log    LogConfig

	// APIURL is the base URL client commands talk to. Empty means unset.
	APIURL string
}

type ServerConfig struct {
	Addr              string
	ShutdownTimeout   time.Duration
	ReadHeaderTimeout time.Duration
}

type StoreConfig struct {
	SeedFile string
}

type DogConfig struct {
	URL     string
	Timeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":3000",
			ShutdownTimeout:   5 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
		},
		Dog: DogConfig{
			URL:     "https://dog.ceo/api/breeds/image/random",
			Timeout: 5 * time.Second,
		},
		CORS: CORSConfig{AllowedOrigins: []string{}},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatText,
		},
	}
}

// NewViper creates a Viper instance with defaults and environment binding.
// Callers bind flags to it before calling Load.
func NewViper() *viper.Viper {
	d := Default()

	v := viper.New()
	v.SetDefault(KeyServerAddr, d.Server.Addr)
	v.SetDefault(KeyServerShutdownTimeout, d.Server.ShutdownTimeout)
	v.SetDefault(KeyServerReadHeaderTimeout, d.Server.ReadHeaderTimeout)
	v.SetDefault(KeyStoreSeedFile, d.Store.SeedFile)
	v.SetDefault(KeyDogURL, d.Dog.URL)
	v.SetDefault(KeyDogTimeout, d.Dog.Timeout)
	v.SetDefault(KeyCORSAllowedOrigins, d.CORS.AllowedOrigins)
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyLogFormat, d.Log.Format)
	v.SetDefault(KeyAPIURL, d.APIURL)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and returns the validated result.
//
// If configFile is empty, taskstore.yaml is searched for in the working
// directory, $XDG_CONFIG_HOME/taskstore and $HOME/.config/taskstore; finding
// none is not an error. An explicit configFile must exist.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("taskstore")
		v.SetConfigType("yaml")
		for _, dir := range searchPaths() {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:              v.GetString(KeyServerAddr),
			ShutdownTimeout:   v.GetDuration(KeyServerShutdownTimeout),
			ReadHeaderTimeout: v.GetDuration(KeyServerReadHeaderTimeout),
		},
		Store: StoreConfig{SeedFile: v.GetString(KeyStoreSeedFile)},
		Dog: DogConfig{
			URL:     v.GetString(KeyDogURL),
			Timeout: v.GetDuration(KeyDogTimeout),
		},
		CORS: CORSConfig{AllowedOrigins: splitList(v.GetStringSlice(KeyCORSAllowedOrigins))},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString(KeyLogLevel)),
			Format: strings.ToLower(v.GetString(KeyLogFormat)),
		},
		APIURL: strings.TrimRight(v.GetString(KeyAPIURL), "/"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, fmt.Errorf("%s: must not be empty", KeyServerAddr))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s: must be positive, got %s", KeyServerShutdownTimeout, c.Server.ShutdownTimeout))
	}
	if c.Server.ReadHeaderTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s: must be positive, got %s", KeyServerReadHeaderTimeout, c.Server.ReadHeaderTimeout))
	}
	if c.Dog.URL == "" {
		errs = append(errs, fmt.Errorf("%s: must not be empty", KeyDogURL))
	}
	if c.Dog.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s: must be positive, got %s", KeyDogTimeout, c.Dog.Timeout))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyLogLevel, err))
	}
	if !logging.ValidFormat(c.Log.Format) {
		errs = append(errs, fmt.Errorf("%s: invalid format %q (use text or json)", KeyLogFormat, c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func searchPaths() []string {
	paths := []string{"."}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "taskstore"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "taskstore"))
	}
	return paths
}

// splitList flattens comma-separated entries, so TASKSTORE_CORS_ALLOWED_ORIGINS
// may be "http://a,http://b".
func splitList(in []string) []string {
	out := []string{}
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
