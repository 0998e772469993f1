// internal/matching/decode.go
package matching

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DecodeProfile parses a profile document. Wrong JSON types are reported as
// *InvalidInputError rather than coerced.
func DecodeProfile(raw []byte) (*UserProfile, error) {
	var p UserProfile
	if err := decode(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func DecodeInternship(raw []byte) (*Internship, error) {
	var in Internship
	if err := decode(raw, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func DecodeCatalog(raw []byte) ([]*Internship, error) {
	var catalog []*Internship
	if err := decode(raw, &catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// DecodeList parses a JSON string array stored under field. Empty input and
// JSON null decode to an empty list.
func DecodeList(field string, raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, asInvalidInput(field, err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func DecodePreferences(raw []byte) (Preferences, error) {
	var p Preferences
	if len(raw) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return Preferences{}, asInvalidInput("preferences", err)
	}
	return p, nil
}

func decode(raw []byte, v interface{}) error {
	if len(raw) == 0 {
		return &InvalidInputError{Reason: "empty document"}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return asInvalidInput("", err)
	}
	return nil
}

func asInvalidInput(field string, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		name := typeErr.Field
		if field != "" {
			if name == "" {
				name = field
			} else {
				name = field + "." + name
			}
		}
		return &InvalidInputError{
			Field:  name,
			Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}
	}
	return &InvalidInputError{Field: field, Reason: err.Error()}
}
