package config

import (
	"fmt"
	"os"
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

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequiredEnvVars []string
	RequiredSecrets []string
}

var (
	// Environment-specific requirements
	requirements = map[Environment]ConfigRequirements{
		Development: {},
		Test:        {},
		CI: {
			RequiredEnvVars: []string{
				"DB_HOST",
				"DB_PORT",
				"DB_NAME",
				"TEST_DB_PASSWORD",
				"TEST_JWT_SECRET",
			},
		},
		Production: {
			RequiredEnvVars: []string{
				"SERVER_PORT",
				"DB_HOST",
				"DB_PORT",
				"DB_NAME",
				"DB_SSL_MODE",
			},
			RequiredSecrets: []string{
				"db_password",
				"jwt_secret",
			},
		},
	}

	detectionProviders = map[string]bool{"roboflow": true, "rekognition": true, "none": true}
	dbDrivers          = map[string]bool{"postgres": true, "sqlite": true}
)

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := cfg.Environment
	reqs := requirements[env]

	var errs []string

	for _, envVar := range reqs.RequiredEnvVars {
		if value := os.Getenv(envVar); value == "" {
			errs = append(errs, fmt.Sprintf("required environment variable %s is not set", envVar))
		}
	}

	for _, secret := range reqs.RequiredSecrets {
		if value := readSecret(secret); value == "" {
			errs = append(errs, fmt.Sprintf("required secret %s is not set", secret))
		}
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{Field: "JWTSecret", Message: "must not be empty"}.Error())
	}
	if !dbDrivers[cfg.DBDriver] {
		errs = append(errs, ValidationError{Field: "DBDriver", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)}.Error())
	}
	if env == Production && cfg.DBDriver != "postgres" {
		errs = append(errs, ValidationError{Field: "DBDriver", Message: "production requires postgres"}.Error())
	}
	if !detectionProviders[cfg.DetectionProvider] {
		errs = append(errs, ValidationError{Field: "DetectionProvider", Message: fmt.Sprintf("unsupported provider %q", cfg.DetectionProvider)}.Error())
	}
	if cfg.MetricsWindowDays < 1 {
		errs = append(errs, ValidationError{Field: "MetricsWindowDays", Message: "must be at least 1"}.Error())
	}
	if cfg.JWTTTL <= 0 {
		errs = append(errs, ValidationError{Field: "JWTTTL", Message: "must be positive"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
