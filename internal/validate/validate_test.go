package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type signupBody struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6,max=10"`
}

var signupMessages = map[string]string{
	"Name.required": "O nome não pode ser em branco",
	"Email.email":   "E-mail está inválido",
	"Password.min":  "A senha deve ter entre 6-10 caracteres",
	"Email":         "e-mail é um campo obrigatório",
}

func TestStructValid(t *testing.T) {
	err := Struct(signupBody{Name: "Adriano", Email: "a@example.com", Password: "123456"}, signupMessages)
	assert.NoError(t, err)
}

func TestStructFirstFailureWins(t *testing.T) {
	// name and password both fail; the first declared field reports
	err := Struct(signupBody{Email: "a@example.com", Password: "123"}, signupMessages)
	assert.EqualError(t, err, "O nome não pode ser em branco")
}

func TestStructFieldTagMessage(t *testing.T) {
	err := Struct(signupBody{Name: "Adriano", Email: "not-an-email", Password: "123456"}, signupMessages)
	assert.EqualError(t, err, "E-mail está inválido")
}

func TestStructFieldFallbackMessage(t *testing.T) {
	err := Struct(signupBody{Name: "Adriano", Password: "123456"}, signupMessages)
	assert.EqualError(t, err, "e-mail é um campo obrigatório")
}

func TestStructGenericMessage(t *testing.T) {
	err := Struct(signupBody{Name: "Adriano", Email: "a@example.com", Password: "123"}, map[string]string{})
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Password"))
}
