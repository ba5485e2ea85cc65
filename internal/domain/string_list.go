package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is an ordered list of strings that the backend stores as a
// serialized JSON array inside a text field. All parsing and formatting of
// such fields goes through EncodeStringList and DecodeStringList.
type StringList []string

// EncodeStringList serializes values into the stored text form. A nil list
// encodes as an empty array.
func EncodeStringList(values []string) string {
	if values == nil {
		values = []string{}
	}
	buf, err := json.Marshal(values)
	if err != nil {
		// []string always marshals
		panic(err)
	}
	return string(buf)
}

// DecodeStringList parses the stored text form. Blank text decodes to an
// empty list.
func DecodeStringList(text string) ([]string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == "null" {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(trimmed), &values); err != nil {
		return nil, fmt.Errorf("decode string list: %w", err)
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

// storedList decodes a stored field for reading. Text that is not a
// serialized list is kept whole as a single entry so the record still loads
// and shows what was stored.
func storedList(text string) StringList {
	values, err := DecodeStringList(text)
	if err != nil {
		return StringList{strings.TrimSpace(text)}
	}
	return values
}

func (l StringList) String() string {
	return strings.Join(l, ", ")
}

func (l StringList) Contains(value string) bool {
	for _, v := range l {
		if v == value {
			return true
		}
	}
	return false
}

// Toggle returns a copy with value removed when present and appended when
// absent. Order of the remaining entries is kept.
func (l StringList) Toggle(value string) StringList {
	out := make(StringList, 0, len(l)+1)
	found := false
	for _, v := range l {
		if v == value {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, value)
	}
	return out
}

// MarshalJSON writes the list as a JSON string holding the serialized array,
// the shape the backend collections expect.
func (l StringList) MarshalJSON() ([]byte, error) {
	return json.Marshal(EncodeStringList(l))
}

// UnmarshalJSON accepts both the serialized string form and a plain array.
// A malformed serialized string is kept as stored, see storedList.
func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*l = nil
		return nil
	case trimmed[0] == '[':
		var values []string
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return err
		}
		*l = values
		return nil
	}
	var text string
	if err := json.Unmarshal(trimmed, &text); err != nil {
		return err
	}
	*l = storedList(text)
	return nil
}

func (l StringList) Value() (driver.Value, error) {
	return EncodeStringList(l), nil
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		*l = storedList(v)
		return nil
	case []byte:
		*l = storedList(string(v))
		return nil
	default:
		return fmt.Errorf("string list: unsupported scan type %T", src)
	}
}
