package theme

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

// namedColors are the CSS colour keywords accepted besides hex/rgb/hsl.
var namedColors = map[string]bool{
	"transparent": true,
	"black":       true,
	"white":       true,
	"gray":        true,
	"grey":        true,
	"lightgray":   true,
	"lightgrey":   true,
	"darkgray":    true,
	"darkgrey":    true,
	"silver":      true,
	"red":         true,
	"green":       true,
	"blue":        true,
	"navy":        true,
	"teal":        true,
	"orange":      true,
	"purple":      true,
	"yellow":      true,
}

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("colorspec", validateColorSpec); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("finite", validateFinite); err != nil {
		panic(err)
	}
}

// validateFinite rejects NaN and infinities, which TOML and YAML both allow
// but JSON cannot carry.
func validateFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func validateColorSpec(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return false
	}
	if namedColors[strings.ToLower(s)] {
		return true
	}
	return validate.Var(s, "iscolor") == nil
}

// Validate checks every field of t against its constraints.
func Validate(t Theme) error {
	if err := validate.Struct(t); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "colorspec":
			msgs = append(msgs, fmt.Sprintf("%s: %q is not a colour", fe.Field(), fe.Value()))
		case "finite":
			msgs = append(msgs, fmt.Sprintf("%s: must be a finite number, got %v", fe.Field(), fe.Value()))
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s: required", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: must satisfy %s=%s, got %v", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidTheme, strings.Join(msgs, "; "))
}
