package form

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ValidateField checks a candidate value against a field definition and
// returns nil on success or an error whose message is the user-facing
// text shown next to the field.  Checks run in a fixed order and the
// first failure wins.  The function is pure: it inspects only its
// arguments.
func ValidateField(f Field, value interface{}) error {
	if f.Type.IsStatic() {
		return nil
	}

	if isEmpty(value) {
		if f.Required {
			return fmt.Errorf("%s é obrigatório", f.Label)
		}
		return nil
	}

	switch v := value.(type) {
	case string:
		if f.Type == NumberInput {
			n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return fmt.Errorf("%s deve ser um número", f.Label)
			}
			return checkBounds(f, n)
		}
		return checkString(f, v)
	case float64:
		return checkBounds(f, v)
	case int:
		return checkBounds(f, float64(v))
	case json.Number:
		if n, err := v.Float64(); err == nil {
			return checkBounds(f, n)
		}
	}

	// Array answers (checkbox groups) only receive the required/empty
	// check above.
	return nil
}

func checkString(f Field, v string) error {
	if f.Validation == nil {
		return nil
	}
	rules := f.Validation
	if rules.MinLength > 0 && len([]rune(v)) < rules.MinLength {
		return fmt.Errorf("%s deve ter pelo menos %d caracteres", f.Label, rules.MinLength)
	}
	if rules.MaxLength > 0 && len([]rune(v)) > rules.MaxLength {
		return fmt.Errorf("%s deve ter no máximo %d caracteres", f.Label, rules.MaxLength)
	}
	if rules.Pattern != "" {
		re, err := regexp.Compile(rules.Pattern)
		if err == nil && !re.MatchString(v) {
			return patternError(f)
		}
	}
	return nil
}

func checkBounds(f Field, n float64) error {
	if f.Validation == nil {
		return nil
	}
	rules := f.Validation
	if rules.Min != nil && n < *rules.Min {
		return fmt.Errorf("%s deve ser no mínimo %s", f.Label, formatNumber(*rules.Min))
	}
	if rules.Max != nil && n > *rules.Max {
		return fmt.Errorf("%s deve ser no máximo %s", f.Label, formatNumber(*rules.Max))
	}
	return nil
}

// patternError prefers the author-supplied message over the generated
// one.  CustomMessage belongs to the pattern rule alone; length and
// bounds failures always use the generated text.
func patternError(f Field) error {
	if f.Validation != nil && f.Validation.CustomMessage != "" {
		return fmt.Errorf("%s", f.Validation.CustomMessage)
	}
	return fmt.Errorf("%s: formato inválido", f.Label)
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// isEmpty reports whether a submitted value counts as absent: nil,
// whitespace-only strings, and empty arrays.
func isEmpty(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []string:
		return len(v) == 0
	case []interface{}:
		return len(v) == 0
	}
	return false
}
