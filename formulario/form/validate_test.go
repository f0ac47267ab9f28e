package form

import "testing"

func floatPtr(f float64) *float64 {
	return &f
}

func TestValidateRequired(t *testing.T) {
	field := Field{Type: TextInput, Label: "Nome", Required: true}

	err := ValidateField(field, "")
	if err == nil {
		t.Fatal("Empty value passed a required field")
	}
	if err.Error() != "Nome é obrigatório" {
		t.Errorf("Unexpected required message: %q", err.Error())
	}

	if err := ValidateField(field, "   \t "); err == nil {
		t.Error("Whitespace-only value passed a required field")
	}
	if err := ValidateField(field, nil); err == nil {
		t.Error("Nil value passed a required field")
	}
	if err := ValidateField(field, "x"); err != nil {
		t.Errorf("Non-empty value failed a required field: %s", err.Error())
	}
}

func TestValidateOptionalEmpty(t *testing.T) {
	field := Field{
		Type:       TextInput,
		Label:      "Observações",
		Validation: &Rules{MinLength: 10},
	}

	// Empty optional values skip every other check.
	if err := ValidateField(field, ""); err != nil {
		t.Errorf("Empty optional value failed validation: %s", err.Error())
	}
	if err := ValidateField(field, nil); err != nil {
		t.Errorf("Nil optional value failed validation: %s", err.Error())
	}
}

func TestValidateLengthBounds(t *testing.T) {
	field := Field{
		Type:       TextInput,
		Label:      "Protocolo",
		Validation: &Rules{MinLength: 10},
	}

	if err := ValidateField(field, "short"); err == nil {
		t.Error("Five characters passed a ten-character minimum")
	}
	if err := ValidateField(field, "0123456789"); err != nil {
		t.Errorf("Exactly ten characters failed a ten-character minimum: %s", err.Error())
	}

	field.Validation = &Rules{MaxLength: 3}
	if err := ValidateField(field, "abcd"); err == nil {
		t.Error("Four characters passed a three-character maximum")
	}
	if err := ValidateField(field, "abc"); err != nil {
		t.Errorf("Exactly three characters failed a three-character maximum: %s", err.Error())
	}

	// Rune count, not byte count.
	field.Validation = &Rules{MaxLength: 4}
	if err := ValidateField(field, "ação"); err != nil {
		t.Errorf("Four-rune accented value failed a four-character maximum: %s", err.Error())
	}
}

func TestValidatePattern(t *testing.T) {
	field := Field{
		Type:       TextInput,
		Label:      "CEP",
		Validation: &Rules{Pattern: `^\d{5}-\d{3}$`},
	}

	if err := ValidateField(field, "65600-000"); err != nil {
		t.Errorf("Matching value failed the pattern: %s", err.Error())
	}
	err := ValidateField(field, "65600000")
	if err == nil {
		t.Fatal("Non-matching value passed the pattern")
	}
	if err.Error() != "CEP: formato inválido" {
		t.Errorf("Unexpected pattern message: %q", err.Error())
	}

	field.Validation.CustomMessage = "Informe o CEP como 00000-000"
	if err := ValidateField(field, "65600000"); err == nil || err.Error() != "Informe o CEP como 00000-000" {
		t.Errorf("Custom message not used: %v", err)
	}
}

func TestValidateCustomMessageOnlyForPattern(t *testing.T) {
	// The custom message replaces the pattern text only; length and
	// numeric bound failures keep their generated messages.
	field := Field{
		Type:       TextInput,
		Label:      "Protocolo",
		Validation: &Rules{MinLength: 5, CustomMessage: "mensagem do autor"},
	}
	if err := ValidateField(field, "abc"); err == nil || err.Error() != "Protocolo deve ter pelo menos 5 caracteres" {
		t.Errorf("Length failure used the custom message: %v", err)
	}

	number := Field{
		Type:       NumberInput,
		Label:      "Idade",
		Validation: &Rules{Min: floatPtr(18), CustomMessage: "mensagem do autor"},
	}
	if err := ValidateField(number, "12"); err == nil || err.Error() != "Idade deve ser no mínimo 18" {
		t.Errorf("Bounds failure used the custom message: %v", err)
	}
	if err := ValidateField(number, "abc"); err == nil || err.Error() != "Idade deve ser um número" {
		t.Errorf("Parse failure used the custom message: %v", err)
	}
}

func TestValidateNumericBounds(t *testing.T) {
	field := Field{
		Type:       NumberInput,
		Label:      "Idade",
		Validation: &Rules{Min: floatPtr(18), Max: floatPtr(120)},
	}

	if err := ValidateField(field, 17.0); err == nil {
		t.Error("Value below the minimum passed")
	}
	if err := ValidateField(field, 18.0); err != nil {
		t.Errorf("Inclusive minimum failed: %s", err.Error())
	}
	if err := ValidateField(field, 120.0); err != nil {
		t.Errorf("Inclusive maximum failed: %s", err.Error())
	}
	if err := ValidateField(field, 121.0); err == nil {
		t.Error("Value above the maximum passed")
	}

	// Number fields submitted as strings are parsed before the check.
	if err := ValidateField(field, "42"); err != nil {
		t.Errorf("Numeric string failed bounds: %s", err.Error())
	}
	if err := ValidateField(field, "12"); err == nil {
		t.Error("Numeric string below the minimum passed")
	}
	if err := ValidateField(field, "abc"); err == nil {
		t.Error("Non-numeric string passed a number field")
	}
}

func TestValidateStaticFields(t *testing.T) {
	// Static fields never fail, whatever their configuration claims.
	sep := Field{Type: Separator, Label: "Seção", Required: true}
	if err := ValidateField(sep, nil); err != nil {
		t.Errorf("Separator failed validation: %s", err.Error())
	}
	html := Field{Type: HTMLBlock, Content: "<p>aviso</p>", Required: true}
	if err := ValidateField(html, nil); err != nil {
		t.Errorf("HTML block failed validation: %s", err.Error())
	}
}

func TestValidateArrayAnswers(t *testing.T) {
	field := Field{
		Type:     CheckboxGroup,
		Label:    "Serviços",
		Required: true,
		Options: []FieldOption{
			{ID: "o1", Label: "Água", Value: "agua"},
			{ID: "o2", Label: "Luz", Value: "luz"},
		},
	}

	if err := ValidateField(field, []string{}); err == nil {
		t.Error("Empty array passed a required checkbox group")
	}
	if err := ValidateField(field, []string{"agua"}); err != nil {
		t.Errorf("Non-empty array failed a required checkbox group: %s", err.Error())
	}
	// Beyond required/empty, array answers receive no further checks.
	field.Validation = &Rules{MinLength: 10}
	if err := ValidateField(field, []string{"agua", "luz"}); err != nil {
		t.Errorf("Array answer hit a string rule: %s", err.Error())
	}
}
