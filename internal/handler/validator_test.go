package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePackType(t *testing.T) {
	tests := []struct {
		packType string
		valid    bool
	}{
		{"", true},
		{"normal", true},
		{"Event_2024", true},
		{"lucky-box", true},
		{"no spaces", false},
		{"<script>", false},
		{"abcdefghijklmnopqrstuvwxyz0123456789", false},
	}
	for _, tt := range tests {
		t.Run(tt.packType, func(t *testing.T) {
			err := GetValidator().ValidateStruct(PackRequest{PackType: tt.packType})
			assert.Equal(t, tt.valid, err == nil)
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	err := GetValidator().ValidateStruct(SendRoseRequest{})

	fields := FormatValidationError(err)

	assert.Equal(t, map[string]string{
		"targetusername": "This field is required",
		"messageid":      "This field is required",
	}, fields)
	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(errors.New("x")))
}

func TestValidateLogin(t *testing.T) {
	assert.NoError(t, GetValidator().ValidateStruct(LoginRequest{Username: "ana"}))
	assert.Error(t, GetValidator().ValidateStruct(LoginRequest{Username: "a/b"}))
	assert.Error(t, GetValidator().ValidateStruct(LoginRequest{}))
}
