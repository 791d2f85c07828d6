package steps

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/mmynk/wispgen/internal/models"
)

// DateLayout is the wire format of date fields (HTML date inputs).
const DateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidationError reports the fields of one step submission that were
// rejected. Values echoes the raw input so the form can be re-rendered.
type ValidationError struct {
	Step   int
	Fields map[string]string
	Values url.Values
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %s", name, e.Fields[name])
	}
	return fmt.Sprintf("step %d: invalid submission (%s)", e.Step, strings.Join(parts, "; "))
}

// Validate checks raw form input against the step's fields and returns the
// accepted answers. Keys not declared by the step are ignored. Booleans are
// always recorded; empty optional text is omitted.
func Validate(s Step, raw url.Values) (models.Answers, error) {
	answers := make(models.Answers, len(s.Fields))
	problems := make(map[string]string)

	for _, f := range s.Fields {
		if f.Kind == KindBoolean {
			answers[f.Name] = models.Bool(parseBool(raw.Get(f.Name), raw.Has(f.Name)))
			continue
		}

		value := strings.TrimSpace(raw.Get(f.Name))
		if value == "" {
			if f.Required {
				problems[f.Name] = "This field is required."
			}
			continue
		}

		if msg := checkText(f, value); msg != "" {
			problems[f.Name] = msg
			continue
		}
		answers[f.Name] = models.String(value)
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Step: s.Index, Fields: problems, Values: raw}
	}
	return answers, nil
}

func checkText(f Field, value string) string {
	if f.Kind == KindChoice {
		if !f.hasChoice(value) {
			return "Not a valid choice."
		}
		return ""
	}
	switch f.Format {
	case FormatEmail:
		if !emailPattern.MatchString(value) {
			return "Invalid email address."
		}
	case FormatDate:
		if _, err := time.Parse(DateLayout, value); err != nil {
			return "Not a valid date value."
		}
	}
	return ""
}

// parseBool treats a checkbox as checked when it is present with any value
// other than an explicit false.
func parseBool(value string, present bool) bool {
	if !present {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "on", "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}

// CheckAnswers verifies that every known field in answers holds the variant
// its definition declares. Choice values must still be a declared choice.
// Unknown field names are ignored.
func CheckAnswers(answers models.Answers) error {
	names := make([]string, 0, len(answers))
	for name := range answers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		f, ok := Lookup(name)
		if !ok {
			continue
		}
		v := answers[name]
		if v.Kind == models.KindInvalid {
			return &FieldError{Field: name, Reason: fmt.Sprintf("unsupported stored value %s", v.Raw)}
		}
		if want := f.ValueKind(); v.Kind != want {
			return &FieldError{Field: name, Reason: fmt.Sprintf("expected %s, got %s", want, v.Kind)}
		}
		if f.Kind == KindChoice && v.Str != "" && !f.hasChoice(v.Str) {
			return &FieldError{Field: name, Reason: fmt.Sprintf("%q is not a valid choice", v.Str)}
		}
	}
	return nil
}

// FieldError describes a stored answer that does not match its definition.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}
