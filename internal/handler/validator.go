package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Custom tags shared by request bodies and path parameters
const (
	TagCrateID = "crate_id"
	TagActorID = "actor_id"
)

// maxActorIDLen covers UUIDs, platform ids and account names with room to spare
const maxActorIDLen = 64

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

var crateIDPattern = regexp.MustCompile(`^[A-Za-z0-9_\-]{1,64}$`)

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation(TagCrateID, validateCrateID)
	_ = v.RegisterValidation(TagActorID, validateActorID)
	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// ValidateVar validates a single value against a tag list
func (v *Validator) ValidateVar(value any, tag string) error {
	return v.validate.Var(value, tag)
}

// FormatValidationError formats validation errors into a user-friendly map
// keyed by lower-cased field name
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"error": "Invalid request format"}
	}

	errs := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errs[strings.ToLower(e.Field())] = describe(e)
	}
	return errs
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case TagCrateID:
		return "Invalid crate id"
	case TagActorID:
		return fmt.Sprintf("Must be 1-%d printable characters", maxActorIDLen)
	case "max":
		return fmt.Sprintf("Must be at most %s", e.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s", e.Param())
	default:
		return "Invalid value"
	}
}

// empty values pass both custom tags; presence is the job of required

func validateCrateID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	return id == "" || crateIDPattern.MatchString(id)
}

func validateActorID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if id == "" {
		return true
	}
	if len(id) > maxActorIDLen || !utf8.ValidString(id) {
		return false
	}
	return !strings.ContainsFunc(id, unicode.IsControl)
}
