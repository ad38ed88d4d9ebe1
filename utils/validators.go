package utils

import (
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"mindwell/model"
)

func RegisterCustomValidators(v *validator.Validate) {
	v.RegisterValidation("password", ValidatePasswordRule)
	v.RegisterValidation("mood", ValidateMoodRule)
}

// InitValidator registers the custom tags on gin's binding engine.
func InitValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterCustomValidators(v)
	}
}

func ValidatePasswordRule(fl validator.FieldLevel) bool {
	return ValidatePassword(fl.Field().String())
}

// ValidatePassword requires at least 8 characters with one digit and one
// letter.
func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	hasNumber, hasLetter := false, false
	for _, char := range password {
		switch {
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsLetter(char):
			hasLetter = true
		}
	}
	return hasNumber && hasLetter
}

func ValidateMoodRule(fl validator.FieldLevel) bool {
	return model.IsKnownMood(strings.ToLower(strings.TrimSpace(fl.Field().String())))
}
