package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// optionNames maps struct fields to the option a user actually types.
var optionNames = map[string]string{
	"Times":       "--times",
	"Warmup":      "--warmup",
	"StackSize":   "--stack-size",
	"GCHeap":      "--gc-heap",
	"Timeout":     "--timeout",
	"BenchDir":    "--dir",
	"Root":        "--root",
	"OptLevel":    "--opt-level",
	"Type":        "--history-type",
	"Pushgateway": "--pushgateway",
}

// Validate checks a resolved configuration and returns every violation in
// one error.
func Validate(cfg *RunConfiguration) error {
	var errs []string

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
		for _, fe := range verrs {
			errs = append(errs, describe(fe))
		}
	}

	if cfg.History.Type == "postgres" && cfg.History.Path == "" {
		errs = append(errs, "--history is required when --history-type=postgres")
	}
	if cfg.Compare && cfg.History.Path == "" {
		errs = append(errs, "--compare needs --history")
	}
	if cfg.BenchDir != "" {
		if info, err := os.Stat(cfg.BenchDir); err != nil || !info.IsDir() {
			errs = append(errs, fmt.Sprintf("--dir must be an existing directory, got: %s", cfg.BenchDir))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func describe(fe validator.FieldError) string {
	name, ok := optionNames[fe.Field()]
	if !ok {
		name = fe.Field()
	}
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be >= %s, got: %v", name, fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be positive, got: %v", name, fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be <= %s, got: %v", name, fe.Param(), fe.Value())
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got: %v", name, fe.Param(), fe.Value())
	case "url":
		return fmt.Sprintf("%s must be a URL, got: %v", name, fe.Value())
	default:
		return fmt.Sprintf("%s failed %q validation", name, fe.Tag())
	}
}
