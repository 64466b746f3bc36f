// Package config loads the environment configuration of the binaries.
//
// Values come from the process environment, optionally seeded from a .env
// file in the working directory; variables already set in the process win.
// Command-line flags are applied by the callers on top of the loaded values.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	// ErrCodeMissingEnv means a required environment variable is not set.
	ErrCodeMissingEnv = "missing_env"
	// ErrCodeInvalid means a value is present but malformed.
	ErrCodeInvalid = "invalid_config"
)

// DotEnvFile is the file LoadDotEnv reads when no path is given.
const DotEnvFile = ".env"

// Plex configures the media-server exporter.
type Plex struct {
	Host       string `env:"PLEX_HOST" env-default:"http://localhost:32400" env-description:"Plex server URL or host:port" validate:"required"`
	Token      string `env:"PLEX_TOKEN" env-description:"Plex authentication token (X-Plex-Token)"`
	OutputFile string `env:"PLEX_OUTPUT_FILE" env-default:"plex_media_dump.json" env-description:"Path of the JSON file to write" validate:"required"`
}

// CWP configures the authentication token generator. The credentials are
// checked before the endpoint, and only their presence matters: an empty
// value that is explicitly set is accepted.
type CWP struct {
	AccessKey    string `env:"pcIdentity" env-required:"true" env-description:"Access key ID"`
	AccessSecret string `env:"pcSecret" env-required:"true" env-description:"Access key secret"`
	URL          string `env:"tlUrl" env-description:"Base URL of the authentication service" validate:"required,url"`
}

// Error is a configuration failure with a stable code.
type Error struct {
	Code string
	Name string // offending variable, if known
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeMissingEnv:
		if e.Name != "" {
			return fmt.Sprintf("%s: missing required environment variable %s", e.Code, e.Name)
		}
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	case ErrCodeInvalid:
		if e.Name != "" {
			return fmt.Sprintf("%s: environment variable %s is invalid: %v", e.Code, e.Name, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code extracts the error code from err, or returns "" if err is not an *Error.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// LoadDotEnv reads KEY=VALUE pairs from path (DotEnvFile when empty) into the
// process environment. Variables that are already set are left untouched.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = DotEnvFile
	}

	info, err := os.Stat(path)
	switch {
	case err != nil && os.IsNotExist(err):
		return nil
	case err != nil:
		return fmt.Errorf("cannot check env file %q: %w", path, err)
	case info.IsDir():
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("cannot load env file %q: %w", path, err)
	}
	return nil
}

// LoadPlex reads the exporter configuration from the environment.
func LoadPlex() (*Plex, error) {
	var cfg Plex
	if err := load(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadCWP reads the token generator configuration from the environment.
func LoadCWP() (*CWP, error) {
	var cfg CWP
	if err := load(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the validate tags of cfg.
func Validate(cfg any) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &Error{Code: ErrCodeInvalid, Err: err}
	}

	fe := verrs[0]
	name := envName(cfg, fe.StructField())
	if fe.Tag() == "required" {
		return &Error{Code: ErrCodeMissingEnv, Name: name, Err: fe}
	}
	return &Error{Code: ErrCodeInvalid, Name: name, Err: fmt.Errorf("failed %q check", fe.Tag())}
}

// Describe renders the environment variables of cfg for --help output.
func Describe(cfg any) string {
	header := "Environment variables:"
	desc, err := cleanenv.GetDescription(cfg, &header)
	if err != nil {
		return ""
	}
	return desc
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func load(cfg any) error {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		field := missingField(err)
		if field == "" {
			return &Error{Code: ErrCodeInvalid, Err: err}
		}
		return &Error{Code: ErrCodeMissingEnv, Name: envName(cfg, field), Err: err}
	}
	return Validate(cfg)
}

// missingField pulls the struct field name out of cleanenv's
// `field "X" is required but the value is not provided` message.
func missingField(err error) string {
	msg := err.Error()
	if !strings.Contains(msg, "is required") {
		return ""
	}
	const marker = `field "`
	i := strings.Index(msg, marker)
	if i < 0 {
		return ""
	}
	rest := msg[i+len(marker):]
	j := strings.IndexByte(rest, '"')
	if j < 0 {
		return ""
	}
	return rest[:j]
}

// envName maps a struct field of cfg to the environment variable bound to it.
func envName(cfg any, field string) string {
	if field == "" {
		return ""
	}
	t := reflect.TypeOf(cfg)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return field
	}
	f, ok := t.FieldByName(field)
	if !ok {
		return field
	}
	if name, _, _ := strings.Cut(f.Tag.Get("env"), ","); name != "" {
		return name
	}
	return field
}
