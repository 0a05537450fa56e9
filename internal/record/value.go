package record

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type valueKind int

const (
	kindAbsent valueKind = iota
	kindNull
	kindString
	kindNumber
	kindBool
	kindComposite
)

// Value is one field of an incoming record. It can hold any JSON value and
// remembers which shape it arrived in, so normalization can tell a string
// apart from a number or a missing field. The zero Value is absent.
type Value struct {
	kind valueKind
	text string
}

// String returns a string Value.
func String(s string) Value {
	return Value{kind: kindString, text: s}
}

// Number returns a numeric Value from its literal form, e.g. "2021".
func Number(literal string) Value {
	return Value{kind: kindNumber, text: literal}
}

// Null returns an explicit null Value.
func Null() Value {
	return Value{kind: kindNull}
}

// UnmarshalJSON accepts any JSON value.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*v = Value{}
		return nil
	}

	switch data[0] {
	case 'n':
		*v = Null()
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
	case 't', 'f':
		v.kind = kindBool
		v.text = string(data)
	case '{', '[':
		v.kind = kindComposite
		v.text = string(data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = Number(n.String())
	}
	return nil
}

// MarshalJSON writes the value back in its original shape.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindString:
		return json.Marshal(v.text)
	case kindNumber, kindBool, kindComposite:
		return []byte(v.text), nil
	default:
		return []byte("null"), nil
	}
}

// IsAbsent reports whether the field was missing entirely.
func (v Value) IsAbsent() bool { return v.kind == kindAbsent }

// Str returns the value and true only when it is a JSON string.
func (v Value) Str() (string, bool) {
	if v.kind != kindString {
		return "", false
	}
	return v.text, true
}

// Text returns the textual form of a scalar: strings verbatim, numbers and
// booleans as their literal. Absent and null values yield "".
func (v Value) Text() string {
	switch v.kind {
	case kindAbsent, kindNull:
		return ""
	default:
		return v.text
	}
}

// Truthy reports whether the value counts as present: a non-empty string,
// a non-zero number, true, or a non-empty array or object.
func (v Value) Truthy() bool {
	switch v.kind {
	case kindString:
		return v.text != ""
	case kindNumber:
		f, err := strconv.ParseFloat(v.text, 64)
		return err != nil || f != 0
	case kindBool:
		return v.text == "true"
	case kindComposite:
		var c any
		if err := json.Unmarshal([]byte(v.text), &c); err != nil {
			return false
		}
		switch c := c.(type) {
		case []any:
			return len(c) > 0
		case map[string]any:
			return len(c) > 0
		}
		return true
	default:
		return false
	}
}
