package form

const (
	TextInput     FieldType = "text"
	EmailInput    FieldType = "email"
	PhoneInput    FieldType = "phone"
	NumberInput   FieldType = "number"
	TextArea      FieldType = "textarea"
	Select        FieldType = "select"
	RadioGroup    FieldType = "radio"
	CheckboxGroup FieldType = "checkbox"
	DateInput     FieldType = "date"
	FileInput     FieldType = "file"
	CPFInput      FieldType = "cpf"
	Separator     FieldType = "separator"
	HTMLBlock     FieldType = "html"
)

// FieldType defines the type of a form field as authored in the builder.
type FieldType string

// HasOptions returns true for field types that carry a list of
// selectable options.
func (t FieldType) HasOptions() bool {
	return t == Select || t == RadioGroup || t == CheckboxGroup
}

// IsStatic returns true for field types that render content but accept
// no input.  Static fields are never required and carry no validation
// rules.
func (t FieldType) IsStatic() bool {
	return t == Separator || t == HTMLBlock
}

// FieldOption is one selectable option of a select, radio, or checkbox
// field.  Insertion order is the display order.
type FieldOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Rules holds the optional validation constraints of a field.  Numeric
// bounds are pointers so that zero is a usable bound.
type Rules struct {
	MinLength     int      `json:"minLength,omitempty"`
	MaxLength     int      `json:"maxLength,omitempty"`
	Min           *float64 `json:"min,omitempty"`
	Max           *float64 `json:"max,omitempty"`
	Pattern       string   `json:"pattern,omitempty"`
	CustomMessage string   `json:"customMessage,omitempty"`
}

// Field represents a single form field (input, choice group, or static
// block).
type Field struct {
	// ID of the field.  Must be unique within a form and is used as the
	// key for submitted values.
	ID string `json:"id"`
	// Type of the field.
	Type FieldType `json:"type"`
	// The Label of the field as it appears on the rendered form.
	Label string `json:"label"`
	// Placeholder text shown inside empty inputs.
	Placeholder string `json:"placeholder,omitempty"`
	// An optional description.  If set it is displayed under the input
	// field and can be used to explain input constraints.
	Description string `json:"description,omitempty"`
	// Whether the field must be answered.  Always false for static
	// field types.
	Required bool `json:"required"`
	// Order defines the render sequence.  Lists may contain gaps after
	// a removal; consumers sort ascending and never assume contiguity.
	Order int `json:"order"`
	// Options of select, radio, and checkbox fields; empty otherwise.
	Options []FieldOption `json:"options,omitempty"`
	// Validation rules applied on submission.  Nil for static fields.
	Validation *Rules `json:"validation,omitempty"`
	// ShowIf makes the field's visibility depend on another field's
	// answer.  Nil means always visible.
	ShowIf *Condition `json:"conditionalLogic,omitempty"`
	// Content holds raw markup for html fields and is unused otherwise.
	Content string `json:"content,omitempty"`
}

// TypeInfo describes one entry of the field type catalog presented by
// the builder palette.
type TypeInfo struct {
	Value       FieldType `json:"value"`
	Label       string    `json:"label"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
}

var typeCatalog = []TypeInfo{
	{TextInput, "Texto", "type", "Campo de texto em linha única"},
	{EmailInput, "E-mail", "mail", "Endereço de e-mail com verificação de formato"},
	{PhoneInput, "Telefone", "phone", "Número de telefone"},
	{NumberInput, "Número", "hash", "Valor numérico com limites opcionais"},
	{TextArea, "Área de texto", "align-left", "Texto longo em múltiplas linhas"},
	{Select, "Lista suspensa", "chevron-down", "Seleção única em lista suspensa"},
	{RadioGroup, "Múltipla escolha", "circle-dot", "Seleção única entre opções visíveis"},
	{CheckboxGroup, "Caixas de seleção", "check-square", "Seleção múltipla entre opções"},
	{DateInput, "Data", "calendar", "Seletor de data"},
	{FileInput, "Arquivo", "paperclip", "Envio de arquivo"},
	{CPFInput, "CPF", "id-card", "Número de CPF"},
	{Separator, "Separador", "minus", "Linha divisória entre seções"},
	{HTMLBlock, "HTML", "code", "Bloco de conteúdo HTML livre"},
}

// Types returns the fixed catalog of the thirteen supported field
// types, in palette order.
func Types() []TypeInfo {
	catalog := make([]TypeInfo, len(typeCatalog))
	copy(catalog, typeCatalog)
	return catalog
}

// TypeInfoFor returns the catalog entry for the given field type.
func TypeInfoFor(t FieldType) (TypeInfo, bool) {
	for _, info := range typeCatalog {
		if info.Value == t {
			return info, true
		}
	}
	return TypeInfo{}, false
}
