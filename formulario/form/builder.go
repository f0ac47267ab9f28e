package form

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Draft is the in-memory editing state of a form in the builder.  All
// operations mutate the draft directly; nothing is persisted until the
// caller validates and hands the draft to the store.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Slug        string   `json:"slug"`
	Fields      []Field  `json:"fields"`
	Settings    Settings `json:"settings"`
	Design      Design   `json:"design"`
	IsActive    bool     `json:"isActive"`
	IsPublic    bool     `json:"isPublic"`

	// editing marks a draft loaded from an existing form.  Title edits
	// on such drafts never touch the slug, so shared URLs keep working.
	editing bool
}

// NewDraft returns an empty draft with default settings and design.
func NewDraft() *Draft {
	return &Draft{
		Fields:   []Field{},
		Settings: DefaultSettings(),
		Design:   DefaultDesign(),
		IsActive: true,
	}
}

// EditDraft returns a draft pre-populated for editing an existing form.
// The slug is locked: SetTitle will not rewrite it.
func EditDraft(title, description, slug string, fields []Field, settings Settings, design Design, isActive, isPublic bool) *Draft {
	d := &Draft{
		Title:       title,
		Description: description,
		Slug:        slug,
		Fields:      make([]Field, len(fields)),
		Settings:    settings,
		Design:      design,
		IsActive:    isActive,
		IsPublic:    isPublic,
		editing:     true,
	}
	copy(d.Fields, fields)
	return d
}

// SetTitle updates the title.  For new drafts the slug is re-derived on
// every call; for drafts editing an existing form it is left alone.
func (d *Draft) SetTitle(title string) {
	d.Title = title
	if !d.editing {
		d.Slug = Slugify(title)
	}
}

// AddField appends a new field of the given type with per-type defaults
// and returns a pointer to it so the caller can open it for editing
// right away.
func (d *Draft) AddField(t FieldType) *Field {
	info, _ := TypeInfoFor(t)
	label := info.Label
	if label == "" {
		label = string(t)
	}

	f := Field{
		ID:    uuid.New().String(),
		Type:  t,
		Label: label,
		Order: len(d.Fields) + 1,
	}
	if t.HasOptions() {
		f.Options = []FieldOption{
			{ID: uuid.New().String(), Label: "Opção 1", Value: "opcao-1"},
			{ID: uuid.New().String(), Label: "Opção 2", Value: "opcao-2"},
		}
	}
	if t == HTMLBlock {
		f.Label = ""
		f.Content = "<p></p>"
	}

	d.Fields = append(d.Fields, f)
	return &d.Fields[len(d.Fields)-1]
}

// ReplaceField swaps the field with the same ID in place, leaving its
// position and the rest of the list untouched.  Returns false when no
// field carries that ID.
func (d *Draft) ReplaceField(f Field) bool {
	for i := range d.Fields {
		if d.Fields[i].ID == f.ID {
			f.Order = d.Fields[i].Order
			if f.Type.IsStatic() {
				f.Required = false
				f.Validation = nil
			}
			d.Fields[i] = f
			return true
		}
	}
	return false
}

// RemoveField deletes the field with the given ID.  Remaining order
// values are NOT renumbered; consumers sort and tolerate gaps.
func (d *Draft) RemoveField(id string) {
	for i := range d.Fields {
		if d.Fields[i].ID == id {
			d.Fields = append(d.Fields[:i], d.Fields[i+1:]...)
			return
		}
	}
}

// DuplicateField clones the field with the given ID, inserts the clone
// right after the original, and renumbers the whole list 1..N.  This is
// the only builder operation that normalizes order.
func (d *Draft) DuplicateField(id string) *Field {
	for i := range d.Fields {
		if d.Fields[i].ID != id {
			continue
		}
		clone := d.Fields[i]
		clone.ID = uuid.New().String()
		if clone.Label != "" {
			clone.Label += " (Cópia)"
		}
		clone.Order = d.Fields[i].Order + 1
		clone.Options = make([]FieldOption, len(d.Fields[i].Options))
		copy(clone.Options, d.Fields[i].Options)
		for j := range clone.Options {
			clone.Options[j].ID = uuid.New().String()
		}
		if d.Fields[i].Validation != nil {
			rules := *d.Fields[i].Validation
			clone.Validation = &rules
		}
		if d.Fields[i].ShowIf != nil {
			cond := *d.Fields[i].ShowIf
			clone.ShowIf = &cond
		}

		d.Fields = append(d.Fields, Field{})
		copy(d.Fields[i+2:], d.Fields[i+1:])
		d.Fields[i+1] = clone
		for j := range d.Fields {
			d.Fields[j].Order = j + 1
		}
		return &d.Fields[i+1]
	}
	return nil
}

// MoveUp swaps the field with its previous neighbour and renumbers the
// pair.  No-op for the first field or an unknown ID.
func (d *Draft) MoveUp(id string) {
	for i := range d.Fields {
		if d.Fields[i].ID == id {
			if i == 0 {
				return
			}
			d.swap(i, i-1)
			return
		}
	}
}

// MoveDown swaps the field with its next neighbour and renumbers the
// pair.  No-op for the last field or an unknown ID.
func (d *Draft) MoveDown(id string) {
	for i := range d.Fields {
		if d.Fields[i].ID == id {
			if i == len(d.Fields)-1 {
				return
			}
			d.swap(i, i+1)
			return
		}
	}
}

func (d *Draft) swap(i, j int) {
	d.Fields[i], d.Fields[j] = d.Fields[j], d.Fields[i]
	d.Fields[i].Order, d.Fields[j].Order = d.Fields[j].Order, d.Fields[i].Order
}

// Validate checks the draft before saving.  The first violation is
// returned as a user-facing error and the draft is left untouched so
// the author can correct it.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("informe o título do formulário")
	}
	if strings.TrimSpace(d.Description) == "" {
		return fmt.Errorf("informe a descrição do formulário")
	}
	if len(d.Fields) == 0 {
		return fmt.Errorf("adicione pelo menos um campo ao formulário")
	}
	return nil
}
