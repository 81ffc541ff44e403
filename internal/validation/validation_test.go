package validation

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type importForm struct {
	URL      string  `json:"url" validate:"required,url"`
	Language string  `json:"language,omitempty" validate:"omitempty,oneof=Portuguese English Spanish"`
	Margin   float64 `json:"margin" validate:"gte=-100"`
}

func TestFromBindError_ValidationErrors(t *testing.T) {
	form := importForm{URL: "not a url", Language: "Klingon", Margin: -200}
	err := validator.New().Struct(form)

	got := FromBindError(err, &form)

	assert.Equal(t, "Informe uma URL válida.", got["url"])
	assert.Equal(t, "Valor deve ser um de: Portuguese English Spanish.", got["language"])
	assert.Equal(t, "Valor deve ser maior ou igual a -100.", got["margin"])
}

func TestFromBindError_Required(t *testing.T) {
	form := importForm{}
	err := validator.New().Struct(form)

	got := FromBindError(err, &form)

	assert.Equal(t, "Este campo é obrigatório.", got["url"])
	assert.NotContains(t, got, "language")
}

func TestFromBindError_OtherErrors(t *testing.T) {
	var form importForm
	err := json.Unmarshal([]byte(`{"url": 12}`), &form)

	got := FromBindError(err, &form)

	assert.Equal(t, FieldErrors{"_": "Dados da requisição inválidos."}, got)
}
