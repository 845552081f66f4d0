package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Result is the structured content of a visit. Every key is optional; a
// missing key decodes to "" or an empty list.
type Result struct {
	Medicines       StringList `json:"medicines"`
	Exercises       StringList `json:"exercises"`
	Diagnosis       Text       `json:"diagnosis"`
	NextAppointment Text       `json:"next_appointment"`
	Tests           StringList `json:"tests"`
	Summary         Text       `json:"summary"`
}

// Prescription joins medicines, exercises and tests with ", ". Items that
// contain commas are kept as they are.
func (r *Result) Prescription() string {
	items := make([]string, 0, len(r.Medicines)+len(r.Exercises)+len(r.Tests))
	items = append(items, r.Medicines...)
	items = append(items, r.Exercises...)
	items = append(items, r.Tests...)
	return strings.Join(items, ", ")
}

// Parse decodes data into a Result.
func Parse(data []byte) (*Result, error) {
	r := &Result{}
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("extraction: decode result: %w", err)
	}
	r.normalize()
	return r, nil
}

func (r *Result) normalize() {
	if r.Medicines == nil {
		r.Medicines = StringList{}
	}
	if r.Exercises == nil {
		r.Exercises = StringList{}
	}
	if r.Tests == nil {
		r.Tests = StringList{}
	}
}

// WriteFile writes the extracted JSON text to path unchanged.
func WriteFile(path, raw string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("extraction: create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		return fmt.Errorf("extraction: write %s: %w", path, err)
	}
	return nil
}

// ReadFile reads and decodes a file written by WriteFile.
func ReadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("extraction: read %s: %w", path, err)
	}
	return Parse(data)
}

// Text is a string value that also accepts a list (joined with ", "), a
// number or a bool, since models do not always follow the requested shape.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	s, err := flatten(data)
	if err != nil {
		return err
	}
	*t = Text(strings.Join(s, ", "))
	return nil
}

// StringList is a list of strings that also accepts a single string, a list
// of scalars or an object (its values in key order).
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	s, err := flatten(data)
	if err != nil {
		return err
	}
	*l = s
	return nil
}

// flatten turns any JSON value into its string leaves.
func flatten(data []byte) ([]string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	var out []string
	collect(v, &out)
	return out, nil
}

func collect(v any, out *[]string) {
	switch x := v.(type) {
	case nil:
	case string:
		*out = append(*out, x)
	case []any:
		for _, item := range x {
			collect(item, out)
		}
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			collect(x[k], out)
		}
	default:
		*out = append(*out, fmt.Sprint(x))
	}
}
