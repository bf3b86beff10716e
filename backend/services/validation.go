// ABOUTME: Input validation for calculator requests
// ABOUTME: Struct-tag range checks plus closed enum lookups against the reference tables

package services

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/markalston/evse-calc/backend/models"
)

// ErrInvalidInput is returned when a request fails range or required-field validation.
var ErrInvalidInput = errors.New("invalid input")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// sanitizeForLog removes control characters from strings to prevent log injection
// when including user input in error messages
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}

// validateStruct runs tag validation and folds field errors into one message
// wrapping ErrInvalidInput.
func validateStruct(kind string, v any) error {
	err := inputValidator().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %s: %v", ErrInvalidInput, kind, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	slog.Debug("Input validation failed", "kind", kind, "errors", len(msgs))
	return fmt.Errorf("%w: %s: %s", ErrInvalidInput, kind, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), sanitizeForLog(fmt.Sprint(fe.Value())))
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// ValidateInstallationInput checks ranges and resolves the charger and
// earthing keys. Unknown keys wrap models.ErrUnknownKey.
func ValidateInstallationInput(ref *models.ReferenceData, in models.InstallationInput) error {
	if err := validateStruct("installation", in); err != nil {
		return err
	}
	if _, err := ref.LoadProfile(in.Charger); err != nil {
		return err
	}
	if _, err := ref.EarthingSystem(in.Earthing); err != nil {
		return err
	}
	return nil
}

// ValidateChargingInput checks ranges and resolves the charger key.
// A target at or below the current level is not an error; it yields a
// non-computable result.
func ValidateChargingInput(ref *models.ReferenceData, in models.ChargingInput) error {
	if err := validateStruct("charging", in); err != nil {
		return err
	}
	_, err := ref.LoadProfile(in.Charger)
	return err
}

// ValidateLightningInput checks dimensions and resolves the location and
// structure keys.
func ValidateLightningInput(ref *models.ReferenceData, in models.LightningInput) error {
	if err := validateStruct("lightning", in); err != nil {
		return err
	}
	if _, err := ref.LocationFactor(in.Location); err != nil {
		return err
	}
	if _, err := ref.StructureClass(in.Structure); err != nil {
		return err
	}
	return nil
}
