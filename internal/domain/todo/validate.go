package todo

import (
	"fmt"
	"math"
	"strings"
)

// Validation rule identifiers, used in FieldError.Rule.
const (
	RuleType       = "type"
	RuleRequired   = "required"
	RuleSQLKeyword = "sql_keyword"
)

// Validation error messages. These are client-facing and must stay stable.
const (
	MsgInvalidID        = "Invalid ID format"
	MsgInvalidName      = "Invalid name format"
	MsgInvalidPriority  = "Invalid priority format"
	MsgInvalidCompleted = "Invalid completed format"
)

// sqlKeywords is the denylist of whole-word tokens rejected in item names.
var sqlKeywords = []string{"select", "insert", "update", "delete", "drop"}

// nameEscaper escapes markup-significant characters to their HTML entities.
// The ampersand is deliberately left alone so already-escaped input is not
// double-escaped on replay.
var nameEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	"'", "&#39;",
	`"`, "&quot;",
)

// FieldError is a single validation failure: which field, which rule,
// and the client-facing message. Messages are joined only at the HTTP
// serialization boundary.
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

// Result is the outcome of full validation. Item holds the sanitized
// record and is populated even when Valid is false; callers must discard
// it in that case.
type Result struct {
	Valid  bool
	Errors []FieldError
	Item   Item
}

// ValidateItem runs full validation over a decoded JSON body.
// Checks run in a fixed order (id, name, priority, completed, keyword scan)
// and every failed check contributes one error. The keyword scan operates on
// the escaped name and stops at the first denylist match.
//
// When requireID is false the id field is ignored entirely; the caller is
// expected to force the ID afterwards (full-replace takes it from the path).
func ValidateItem(raw map[string]any, requireID bool) Result {
	var errs []FieldError

	var id int
	if requireID {
		n, ok := wholeNumber(raw["todoItemId"])
		if !ok {
			errs = append(errs, FieldError{Field: "todoItemId", Rule: RuleType, Message: MsgInvalidID})
		} else {
			id = n
		}
	}

	name, nameOK := nonEmptyString(raw["name"])
	if !nameOK {
		errs = append(errs, FieldError{Field: "name", Rule: RuleType, Message: MsgInvalidName})
	}

	priority, prioOK := wholeNumber(raw["priority"])
	if !prioOK {
		errs = append(errs, FieldError{Field: "priority", Rule: RuleType, Message: MsgInvalidPriority})
	}

	completed, compOK := raw["completed"].(bool)
	if !compOK {
		errs = append(errs, FieldError{Field: "completed", Rule: RuleType, Message: MsgInvalidCompleted})
	}

	escaped := name
	if nameOK {
		escaped = nameEscaper.Replace(name)
		if word, found := findSQLKeyword(escaped); found {
			errs = append(errs, FieldError{
				Field:   "name",
				Rule:    RuleSQLKeyword,
				Message: keywordMessage(word),
			})
		}
	}

	return Result{
		Valid:  len(errs) == 0,
		Errors: errs,
		Item: Item{
			ID:        id,
			Name:      escaped,
			Priority:  priority,
			Completed: completed,
		},
	}
}

// ValidatePatch runs partial validation over a decoded JSON body.
// Only fields present in the input are type-checked; absent fields stay nil
// in the returned Patch. A denylist match in the name short-circuits with
// that single error and suppresses all other checks; this mirrors the
// full-validation keyword rule but with abort-on-match semantics. Escaping
// of the name happens only after the keyword scan passes.
func ValidatePatch(raw map[string]any) (Patch, []FieldError) {
	var patch Patch
	var errs []FieldError

	if v, present := raw["name"]; present {
		name, ok := nonEmptyString(v)
		if !ok {
			errs = append(errs, FieldError{Field: "name", Rule: RuleType, Message: MsgInvalidName})
		} else {
			if word, found := findSQLKeyword(name); found {
				return Patch{}, []FieldError{{
					Field:   "name",
					Rule:    RuleSQLKeyword,
					Message: keywordMessage(word),
				}}
			}
			escaped := nameEscaper.Replace(name)
			patch.Name = &escaped
		}
	}

	if v, present := raw["priority"]; present {
		n, ok := wholeNumber(v)
		if !ok {
			errs = append(errs, FieldError{Field: "priority", Rule: RuleType, Message: MsgInvalidPriority})
		} else {
			patch.Priority = &n
		}
	}

	if v, present := raw["completed"]; present {
		b, ok := v.(bool)
		if !ok {
			errs = append(errs, FieldError{Field: "completed", Rule: RuleType, Message: MsgInvalidCompleted})
		} else {
			patch.Completed = &b
		}
	}

	if len(errs) > 0 {
		return Patch{}, errs
	}
	return patch, nil
}

// EscapeName returns the HTML-entity-escaped form of a name.
// Exposed for tests and callers that need the stored representation.
func EscapeName(name string) string {
	return nameEscaper.Replace(name)
}

// findSQLKeyword splits the name on whitespace and reports the first
// lowercased token that exactly matches a denylisted keyword.
func findSQLKeyword(name string) (string, bool) {
	for _, token := range strings.Fields(name) {
		token = strings.ToLower(token)
		for _, kw := range sqlKeywords {
			if token == kw {
				return kw, true
			}
		}
	}
	return "", false
}

func keywordMessage(word string) string {
	return fmt.Sprintf("%s: contains SQL keyword %q", MsgInvalidName, word)
}

// wholeNumber reports whether a decoded JSON value is an integer.
// encoding/json decodes numbers as float64, so whole-valued floats count
// (1.0 is an integer, 1.5 is not).
func wholeNumber(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// nonEmptyString reports whether a decoded JSON value is a string that is
// non-empty after trimming.
func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
