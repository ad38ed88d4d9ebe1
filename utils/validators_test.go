package utils

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"short1", false},
		{"longenough", false},
		{"12345678", false},
		{"calmmind42", true},
		{"Pa55word!", true},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidatePassword(tt.password))
		})
	}
}

func TestMoodTag(t *testing.T) {
	v := validator.New()
	RegisterCustomValidators(v)

	type form struct {
		Mood string `validate:"required,mood"`
	}
	assert.NoError(t, v.Struct(form{Mood: "happy"}))
	assert.NoError(t, v.Struct(form{Mood: " Calm "}))
	assert.Error(t, v.Struct(form{Mood: "ecstatic-ish"}))
}
