package configs

import (
	"fmt"
	"strings"

	"gratia-output/internal/shared/validators"

	"github.com/spf13/viper"
)

// LoadConfig reads configuration from environment variables, optionally seeded from a
// dotenv file, and validates it. Environment variables win over the file.
var LoadConfig = func(envFile string) (*Config, error) {
	v := viper.New()
	for key, value := range envDefaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env %q: %w", key, err)
		}
	}

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read env file %q: %w", envFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg, func(e validators.FieldError) string {
		return strings.ToUpper(e.Field())
	}); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadProbeConfig reads the YAML probe configuration file and validates it.
var LoadProbeConfig = func(configPath string) (*ProbeConfig, error) {
	v := viper.New()
	for key, value := range probeDefaults {
		v.SetDefault(key, value)
	}
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read probe config file %q: %w", configPath, err)
	}

	var cfg ProbeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal probe config: %w", err)
	}

	if err := validate(&cfg, func(e validators.FieldError) string {
		// "ProbeConfig.collector.url" -> "collector.url"
		parts := strings.Split(e.Namespace(), ".")
		if len(parts) >= 2 {
			return strings.Join(parts[1:], ".")
		}
		return e.Field()
	}); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg any, fieldName func(validators.FieldError) string) error {
	validate := validators.NewWithMapstructureNames()
	if err := validate.Struct(cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(fieldName(e), e))
			}
		}
		return fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}
	return nil
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(field string, e validators.FieldError) string {
	var msg string
	switch e.Tag() {
	case "required", "required_if":
		msg = fmt.Sprintf("%s (required)", field)
	case "min":
		msg = fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "oneof":
		msg = fmt.Sprintf("%s (oneof=%s)", field, e.Param())
	case "file":
		msg = fmt.Sprintf("%s (must name an existing file)", field)
	default:
		msg = fmt.Sprintf("%s (%s)", field, e.Tag())
	}

	return msg
}
