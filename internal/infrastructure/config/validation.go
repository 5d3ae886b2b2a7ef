package config

import (
	"fmt"
	"net"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator is a wrapper around go-playground/validator that reports fields
// by their config.yaml path, e.g. "store.base_url"
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance with the engine's custom rules
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// hostport: a listen or dial address such as ":50061" or "0.0.0.0:50061"
	_ = v.RegisterValidation("hostport", func(fl validator.FieldLevel) bool {
		_, port, err := net.SplitHostPort(fl.Field().String())
		return err == nil && port != ""
	})

	v.RegisterStructValidation(validateStore, StoreConfig{})

	return &Validator{
		validate: v,
	}
}

// validateStore requires a base URL whenever kingdoms come from the remote store
func validateStore(sl validator.StructLevel) {
	store := sl.Current().Interface().(StoreConfig)
	if store.Kind == "http" && store.BaseURL == "" {
		sl.ReportError(store.BaseURL, "base_url", "BaseURL", "required_for_http", "")
	}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func (v *Validator) formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrs {
			messages = append(messages, fmt.Sprintf(
				"field '%s' failed validation: %s (value: '%v')",
				configPath(e.Namespace()),
				e.Tag(),
				e.Value(),
			))
		}
		return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return err
}

// configPath drops the root struct name from a validator namespace
func configPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	v := NewValidator()
	return v.Validate(cfg)
}
