package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	// Environment-specific required fields
	requirements = map[Environment][]string{
		Development: {"server.port", "db.driver"},
		Test:        {"server.port", "db.driver"},
		CI:          {"server.port", "db.driver", "db.host", "db.port", "db.name", "jwt.secret"},
		Production: {
			"server.port",
			"db.driver",
			"db.host",
			"db.port",
			"db.user",
			"db.password",
			"db.name",
			"jwt.secret",
		},
	}
)

func fieldValues(cfg *Config) map[string]string {
	return map[string]string{
		"server.port": cfg.ServerPort,
		"db.driver":   cfg.DBDriver,
		"db.host":     cfg.DBHost,
		"db.port":     cfg.DBPort,
		"db.user":     cfg.DBUser,
		"db.password": cfg.DBPassword,
		"db.name":     cfg.DBName,
		"jwt.secret":  cfg.JWTSecret,
	}
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []string

	values := fieldValues(cfg)
	for _, field := range requirements[cfg.Environment] {
		if values[field] == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"}.Error())
		}
	}

	switch cfg.DBDriver {
	case "postgres":
	case "sqlite":
		if cfg.Environment == Production {
			errs = append(errs, ValidationError{Field: "db.driver", Message: "sqlite is not allowed in production"}.Error())
		}
	default:
		errs = append(errs, ValidationError{Field: "db.driver", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)}.Error())
	}

	if cfg.Environment == Production && cfg.JWTSecret == DefaultJWTSecret {
		errs = append(errs, ValidationError{Field: "jwt.secret", Message: "default secret is not allowed in production"}.Error())
	}

	switch cfg.MediaBackend {
	case "local":
	case "s3":
		if cfg.S3Bucket == "" {
			errs = append(errs, ValidationError{Field: "s3.bucket", Message: "is required for the s3 media backend"}.Error())
		}
	default:
		errs = append(errs, ValidationError{Field: "media.backend", Message: fmt.Sprintf("unsupported backend %q", cfg.MediaBackend)}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "\n"))
	}

	return nil
}
