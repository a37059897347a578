package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
)

// Validator is a wrapper around go-playground/validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance with custom validation rules
func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("sectorhex", validateSectorHex)

	return &Validator{
		validate: v,
	}
}

// validateSectorHex accepts "<sector> <hex>" strings
func validateSectorHex(fl validator.FieldLevel) bool {
	_, err := shared.ParseSectorHex(fl.Field().String())
	return err == nil
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
				e.Namespace(),
				e.Tag(),
				e.Value(),
			))
		}
		return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return err
}

// ValidateConfig validates the entire configuration, including the checks
// that span several fields
func ValidateConfig(cfg *Config) error {
	v := NewValidator()
	if err := v.Validate(cfg); err != nil {
		return err
	}

	if _, ok := cfg.Ships[cfg.DefaultShip]; !ok {
		return fmt.Errorf("default_ship %q is not a configured ship", cfg.DefaultShip)
	}
	if cfg.Packing.Mode == "grpc" && cfg.Packing.Address == "" {
		return fmt.Errorf("packing.address is required in grpc mode")
	}
	if cfg.Logging.Output == "file" && cfg.Logging.FilePath == "" {
		return fmt.Errorf("logging.file_path is required when output is file")
	}

	regions := map[string][]string{
		"politics.home_worlds":  cfg.Politics.HomeWorlds,
		"politics.safe_worlds":  cfg.Politics.SafeWorlds,
		"politics.rival_zone_a": cfg.Politics.RivalZoneA,
		"politics.rival_zone_b": cfg.Politics.RivalZoneB,
	}
	for field, values := range regions {
		for _, value := range values {
			if err := v.validate.Var(value, "sectorhex"); err != nil {
				return fmt.Errorf("%s: %q is not a \"<sector> <hex>\" location", field, value)
			}
		}
	}

	for name, profile := range cfg.Ships {
		if _, err := profile.Build(name, cfg.Politics); err != nil {
			return err
		}
	}
	return nil
}
