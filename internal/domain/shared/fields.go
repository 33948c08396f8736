// Package shared holds the value types request payloads use to carry
// optional references, amounts and partial-update fields.
package shared

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field is one column assignment of a partial update.
type Field struct {
	Column string
	Value  any
}

// OptionalID is a nullable foreign key that also records whether the
// payload mentioned it at all. Absent leaves Set false; null, 0 and ""
// decode to Set with no ID.
type OptionalID struct {
	Set   bool
	Valid bool
	ID    int64
}

// SomeID returns a present, non-null reference.
func SomeID(id int64) OptionalID {
	if id <= 0 {
		return NoID()
	}
	return OptionalID{Set: true, Valid: true, ID: id}
}

// NoID returns a present, null reference.
func NoID() OptionalID {
	return OptionalID{Set: true}
}

// IsZero reports whether the reference was left out; used by omitzero.
func (o OptionalID) IsZero() bool { return !o.Set }

// Value is what gets bound into SQL: nil for no reference.
func (o OptionalID) Value() any {
	if !o.Valid {
		return nil
	}
	return o.ID
}

// Ptr returns the referenced id or nil.
func (o OptionalID) Ptr() *int64 {
	if !o.Valid {
		return nil
	}
	id := o.ID
	return &id
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	o.Set = true
	o.Valid = false
	o.ID = 0

	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// JSON numbers like 3.0 are still a usable id.
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != math.Trunc(f) {
			return fmt.Errorf("invalid reference %q", raw)
		}
		id = int64(f)
	}
	if id <= 0 {
		return nil
	}

	o.Valid = true
	o.ID = id
	return nil
}

func (o OptionalID) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(o.ID, 10)), nil
}

// Amount is a currency value that never fails to decode: anything that is
// not a finite number, or a string holding one, becomes 0.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			*a = 0
			return nil
		}
		*a = Amount(ParseAmount(raw))
		return nil
	}
	*a = Amount(ParseAmount(string(data)))
	return nil
}

// ParseAmount parses a user-entered value, returning 0 for anything that is
// not a finite, non-negative number.
func ParseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// TrimPtr trims a present string and leaves an absent one absent.
func TrimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
