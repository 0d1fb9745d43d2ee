package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexID is an externally supplied identifier that may arrive as a JSON
// string or a JSON number. It is normalized to its string form.
type FlexID string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty identifier")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to parse identifier: %w", err)
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier must be a string or number: %w", err)
	}
	*f = FlexID(n.String())
	return nil
}

// String returns the normalized string form.
func (f FlexID) String() string {
	return string(f)
}

// FlexInt is an integer field that may arrive as a JSON number or a
// numeric JSON string.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty integer")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to parse integer: %w", err)
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("integer field holds non-numeric string %q: %w", s, err)
		}
		*f = FlexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("integer field must be a number or numeric string: %w", err)
	}
	*f = FlexInt(n)
	return nil
}

// Int returns the plain int value.
func (f FlexInt) Int() int {
	return int(f)
}
