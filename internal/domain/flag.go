package domain

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// Flag is a boolean the hosted backend stores as the strings "1" and "0".
type Flag bool

func (f Flag) String() string {
	if f {
		return "1"
	}
	return "0"
}

func (f Flag) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(f.String())), nil
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	parsed, err := parseFlag(raw)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f Flag) Value() (driver.Value, error) {
	return bool(f), nil
}

func (f *Flag) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(v)
	case int64:
		*f = v != 0
	case string:
		parsed, err := parseFlag(v)
		if err != nil {
			return err
		}
		*f = parsed
	case []byte:
		parsed, err := parseFlag(string(v))
		if err != nil {
			return err
		}
		*f = parsed
	default:
		return fmt.Errorf("flag: unsupported scan type %T", src)
	}
	return nil
}

func parseFlag(raw string) (Flag, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "t", "on", "yes":
		return true, nil
	case "0", "false", "f", "off", "no", "", "null":
		return false, nil
	}
	return false, fmt.Errorf("flag: invalid value %q", raw)
}
