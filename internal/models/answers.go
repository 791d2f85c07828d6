package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// ValueKind identifies which variant a Value holds.
type ValueKind int

const (
	// KindInvalid marks a stored value that is neither a string nor a boolean.
	KindInvalid ValueKind = iota
	KindString
	KindBool
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "invalid"
	}
}

// Value is one answer in a questionnaire.
type Value struct {
	Kind ValueKind

	// Str is set when Kind is KindString.
	Str string

	// Bool is set when Kind is KindBool.
	Bool bool

	// Raw keeps the undecodable JSON when Kind is KindInvalid.
	Raw json.RawMessage
}

// String returns a string Value.
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Bool returns a boolean Value.
func Bool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// MarshalJSON encodes the value as a bare JSON string or boolean.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindBool:
		return json.Marshal(v.Bool)
	default:
		if len(v.Raw) > 0 {
			return v.Raw, nil
		}
		return nil, fmt.Errorf("cannot marshal value of kind %s", v.Kind)
	}
}

// UnmarshalJSON accepts any JSON. Strings and booleans decode into their
// variants; everything else is kept as KindInvalid.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty answer value")
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = String(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return err
		}
		*v = Bool(b)
	default:
		*v = Value{Kind: KindInvalid, Raw: append(json.RawMessage(nil), trimmed...)}
	}
	return nil
}

// Answers maps field names to values. A missing key means the field was
// omitted.
type Answers map[string]Value

// String returns the string answer for name, or "" if absent or not a string.
func (a Answers) String(name string) string {
	v, ok := a[name]
	if !ok || v.Kind != KindString {
		return ""
	}
	return v.Str
}

// Bool reports whether name holds a true boolean.
func (a Answers) Bool(name string) bool {
	v, ok := a[name]
	return ok && v.Kind == KindBool && v.Bool
}

// Has reports whether name has a non-empty value.
func (a Answers) Has(name string) bool {
	v, ok := a[name]
	if !ok {
		return false
	}
	if v.Kind == KindString {
		return v.Str != ""
	}
	return true
}

// Clone returns a shallow copy of a.
func (a Answers) Clone() Answers {
	if a == nil {
		return Answers{}
	}
	return maps.Clone(a)
}

// UnmarshalJSON decodes an answers object. JSON null members are dropped.
func (a *Answers) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode answers: %w", err)
	}
	out := make(Answers, len(raw))
	for name, msg := range raw {
		if string(bytes.TrimSpace(msg)) == "null" {
			continue
		}
		var v Value
		if err := v.UnmarshalJSON(msg); err != nil {
			return fmt.Errorf("failed to decode answer %q: %w", name, err)
		}
		out[name] = v
	}
	*a = out
	return nil
}
