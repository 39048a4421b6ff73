// Package validation holds the field predicates applied to submitted forms
// and registers them as validator tags on gin's binding engine.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	// TagCapitalized requires the first letter to be uppercase
	TagCapitalized = "capitalized"
	// TagNoZero rejects any "0" character
	TagNoZero = "nozero"
)

var (
	ErrNotCapitalized = errors.New("this field must start with a capital letter")
	ErrContainsZero   = errors.New("zero characters are not allowed")
	ErrNameMissing    = errors.New("enter either first or last name")
)

// Capitalized fails unless s starts with an uppercase letter
func Capitalized(s string) error {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return ErrNotCapitalized
	}
	return nil
}

// NoZero fails if s contains the character "0"
func NoZero(s string) error {
	if strings.ContainsRune(s, '0') {
		return ErrContainsZero
	}
	return nil
}

// EitherName fails when both first and last name are blank
func EitherName(first, last string) error {
	if strings.TrimSpace(first) == "" && strings.TrimSpace(last) == "" {
		return ErrNameMissing
	}
	return nil
}

// Register installs the custom tags on gin's validator. Safe to call more than once.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation(TagCapitalized, func(fl validator.FieldLevel) bool {
		return Capitalized(fl.Field().String()) == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation(TagNoZero, func(fl validator.FieldLevel) bool {
		return NoZero(fl.Field().String()) == nil
	})
}

// FieldErrors flattens a binding error into field -> message. Errors that are
// not validation failures (malformed bodies) are reported under "form".
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		out[fieldName(fe)] = message(fe)
	}
	return out
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return fe.StructField()
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "email":
		return "enter a valid email address"
	case TagCapitalized:
		return ErrNotCapitalized.Error()
	case TagNoZero:
		return ErrContainsZero.Error()
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
