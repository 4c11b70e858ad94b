package validator

import (
	"github.com/GityImran/ideation-lab/internal/domain"

	validators "github.com/go-playground/validator/v10"
)

// Validator interface
type Validator interface {
	ValidateStruct(inf interface{}) error
}

type validator struct {
	validator *validators.Validate
}

// New Validator func
func New() Validator {
	v := validators.New()
	// contentkind accepts flashcards or quiz
	_ = v.RegisterValidation("contentkind", func(fl validators.FieldLevel) bool {
		return domain.ContentKind(fl.Field().String()).IsValid()
	})
	return &validator{
		validator: v,
	}
}

// ValidateStruct func
func (v *validator) ValidateStruct(inf interface{}) error {

	return v.validator.Struct(inf)
}
