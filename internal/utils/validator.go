package utils

import (
	"reflect"
	"strings"

	"github.com/azureprep/quiz-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground struct validation with the custom tags used
// across the question bank and request types.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()
	registerCustomValidators(validate)
	return &Validator{validate: validate}
}

// Validate runs struct-tag validation.
func (v *Validator) Validate(s interface{}) error {
	return v.validate.Struct(s)
}

func validateExamDomain(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, domain := range models.Domains {
		if string(domain) == value {
			return true
		}
	}
	return false
}

func validatePenaltyType(fl validator.FieldLevel) bool {
	switch models.PenaltyType(fl.Field().String()) {
	case models.PenaltyScore, models.PenaltyTime, models.PenaltyNone:
		return true
	}
	return false
}

func validateQuizMode(fl validator.FieldLevel) bool {
	switch models.QuizMode(fl.Field().String()) {
	case models.ModePractice, models.ModeExam:
		return true
	}
	return false
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("exam_domain", validateExamDomain)
	validate.RegisterValidation("penalty_type", validatePenaltyType)
	validate.RegisterValidation("quiz_mode", validateQuizMode)

	// Report json field names in validation errors.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
