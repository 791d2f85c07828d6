// Package steps defines the fixed wizard questionnaire and validates
// submissions against it. The definitions double as the schema registry
// used to check stored answers before a document is rendered.
package steps

import "github.com/mmynk/wispgen/internal/models"

// Kind is the input type of a field.
type Kind string

const (
	KindText      Kind = "text"
	KindParagraph Kind = "paragraph"
	KindChoice    Kind = "choice"
	KindBoolean   Kind = "boolean"
)

// Format narrows what a text field accepts.
type Format string

const (
	FormatPlain Format = ""
	FormatEmail Format = "email"
	FormatDate  Format = "date"
	FormatPhone Format = "phone"
)

// Choice is one option of a choice field.
type Choice struct {
	Value string
	Label string
}

// Field describes one question.
type Field struct {
	Name     string
	Label    string
	Help     string
	Kind     Kind
	Format   Format
	Required bool
	Choices  []Choice

	// Default pre-fills the field when the step has no stored answers.
	Default string
}

// ValueKind returns the answer variant this field stores.
func (f Field) ValueKind() models.ValueKind {
	if f.Kind == KindBoolean {
		return models.KindBool
	}
	return models.KindString
}

// ChoiceLabel returns the label for value, or value itself if it is not a
// declared choice.
func (f Field) ChoiceLabel(value string) string {
	for _, c := range f.Choices {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}

func (f Field) hasChoice(value string) bool {
	for _, c := range f.Choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

// Step is one wizard page.
type Step struct {
	Index  int
	Title  string
	Fields []Field
}

// Field returns the named field of the step.
func (s Step) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
