package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults.
const (
	DefaultBaseURL  = "https://restcountries.com/v3.1"
	DefaultTimeout  = 15 * time.Second
	DefaultTheme    = "light"
	DefaultLogLevel = "info"
)

// Settings is the merged, validated runtime configuration.
type Settings struct {
	BaseURL       string        `validate:"required,url"`
	Timeout       time.Duration `validate:"gt=0"`
	Fallback      string
	Theme         string        `validate:"required,theme"`
	WatchInterval time.Duration `validate:"gte=0"`
	LogLevel      string        `validate:"required,oneof=debug info warn error"`
	LogFile       string        `validate:"required"`
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		BaseURL:  DefaultBaseURL,
		Timeout:  DefaultTimeout,
		Theme:    DefaultTheme,
		LogLevel: DefaultLogLevel,
		LogFile:  DefaultLogPath(),
	}
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("theme", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case "light", "dark":
				return true
			default:
				return false
			}
		})
		validateInst = v
	})
	return validateInst
}

// Validate checks the settings and returns the first problem found.
func (s Settings) Validate() error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return NewValidationError("", err.Error(), err)
	}
	sort.SliceStable(verrs, func(i, j int) bool {
		return verrs[i].Field() < verrs[j].Field()
	})
	fe := verrs[0]
	return NewValidationError(fieldName(fe.Field()), describe(fe), err)
}

// ApplyFile overlays every value set in the file onto s. Durations use Go
// syntax ("15s", "2m").
func (s *Settings) ApplyFile(file FileConfig) error {
	if file.API.BaseURL != nil {
		s.BaseURL = *file.API.BaseURL
	}
	if file.API.Timeout != nil {
		d, err := time.ParseDuration(*file.API.Timeout)
		if err != nil {
			return NewValidationError("api.timeout", "invalid duration", err)
		}
		s.Timeout = d
	}
	if file.API.Fallback != nil {
		s.Fallback = *file.API.Fallback
	}
	if file.Theme.Default != nil {
		s.Theme = strings.ToLower(*file.Theme.Default)
	}
	if file.Theme.WatchInterval != nil {
		d, err := time.ParseDuration(*file.Theme.WatchInterval)
		if err != nil {
			return NewValidationError("theme.watch-interval", "invalid duration", err)
		}
		s.WatchInterval = d
	}
	if file.Log.Level != nil {
		s.LogLevel = strings.ToLower(*file.Log.Level)
	}
	if file.Log.File != nil {
		s.LogFile = *file.Log.File
	}
	return nil
}

func fieldName(field string) string {
	switch field {
	case "BaseURL":
		return "api.base-url"
	case "Timeout":
		return "api.timeout"
	case "Theme":
		return "theme.default"
	case "WatchInterval":
		return "theme.watch-interval"
	case "LogLevel":
		return "log.level"
	case "LogFile":
		return "log.file"
	default:
		return strings.ToLower(field)
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return fmt.Sprintf("%q is not a valid URL", fe.Value())
	case "gt":
		return "must be positive"
	case "gte":
		return "must not be negative"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "theme":
		return fmt.Sprintf("%q is not a theme (want light or dark)", fe.Value())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
