package form

import (
	"fmt"
	"sort"
	"strings"
)

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpContains    Operator = "contains"
	OpNotContains Operator = "not_contains"
)

// Operator compares a controlling field's answer with a reference value.
type Operator string

// Condition makes a field visible only when another field's answer
// matches.  A condition referring to an unanswered field never matches
// for equals/contains and always matches for their negations.
type Condition struct {
	FieldID  string   `json:"fieldId"`
	Value    string   `json:"value"`
	Operator Operator `json:"operator"`
}

// Visible evaluates the condition against the submitted values.
func (c *Condition) Visible(values map[string]interface{}) bool {
	if c == nil {
		return true
	}
	answer, ok := values[c.FieldID]
	switch c.Operator {
	case OpEquals:
		return ok && stringify(answer) == c.Value
	case OpNotEquals:
		return !ok || stringify(answer) != c.Value
	case OpContains:
		return ok && answerContains(answer, c.Value)
	case OpNotContains:
		return !ok || !answerContains(answer, c.Value)
	}
	return true
}

// VisibleFields returns the fields visible under the given answers,
// sorted by ascending order.  Gapped order values sort fine.
func VisibleFields(fields []Field, values map[string]interface{}) []Field {
	visible := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f.ShowIf.Visible(values) {
			visible = append(visible, f)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Order < visible[j].Order
	})
	return visible
}

// SortFields returns a copy of the fields sorted by ascending order.
func SortFields(fields []Field) []Field {
	sorted := make([]Field, len(fields))
	copy(sorted, fields)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}

// answerContains matches array answers by membership and scalar answers
// by substring.
func answerContains(answer interface{}, value string) bool {
	switch v := answer.(type) {
	case []string:
		for _, item := range v {
			if item == value {
				return true
			}
		}
		return false
	case []interface{}:
		for _, item := range v {
			if stringify(item) == value {
				return true
			}
		}
		return false
	}
	return strings.Contains(stringify(answer), value)
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, "; ")
	case []interface{}:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, "; ")
	case float64:
		return formatNumber(v)
	}
	return fmt.Sprintf("%v", value)
}

// Stringify renders a submitted answer the way listings and exports
// display it: arrays joined with "; ", numbers without a trailing
// fraction, nil as the empty string.
func Stringify(value interface{}) string {
	return stringify(value)
}
