// Package jsontime provides a time.Duration that reads naturally from JSON
// and YAML configuration files.
package jsontime

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Duration is a time.Duration that serializes to/from a string or a number in
// JSON and YAML.
// When marshaling, it outputs the duration string (e.g., "1m30s").
// When unmarshaling, it accepts either a string (e.g., "1m30s") or a number
// of seconds (e.g., 90 or 1.5).
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return d.parse(s)
	}
	var secs float64
	if err := json.Unmarshal(b, &secs); err != nil {
		return fmt.Errorf("jsontime: invalid duration %s", b)
	}
	return d.setSeconds(secs)
}

// MarshalYAML implements the yaml Marshaler interfaces of both
// gopkg.in/yaml.v3 and github.com/goccy/go-yaml.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements the function-style yaml Unmarshaler accepted by
// both gopkg.in/yaml.v3 and github.com/goccy/go-yaml.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	switch v := v.(type) {
	case nil:
		return nil
	case string:
		return d.parse(v)
	case int:
		return d.setSeconds(float64(v))
	case int64:
		return d.setSeconds(float64(v))
	case uint64:
		return d.setSeconds(float64(v))
	case float64:
		return d.setSeconds(v)
	default:
		return fmt.Errorf("jsontime: invalid duration %v (%T)", v, v)
	}
}

func (d *Duration) parse(s string) error {
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("jsontime: %w", err)
	}
	*d = Duration(dur)
	return nil
}

func (d *Duration) setSeconds(secs float64) error {
	if math.IsNaN(secs) || math.IsInf(secs, 0) || math.Abs(secs) > math.MaxInt64/float64(time.Second) {
		return fmt.Errorf("jsontime: duration %v out of range", secs)
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// Duration returns the underlying time.Duration value.
// Returns 0 if d is nil.
func (d *Duration) Duration() time.Duration {
	if d == nil {
		return 0
	}
	return time.Duration(*d)
}

// String returns the duration formatted as a string.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// FromDuration creates a Duration pointer from a time.Duration.
func FromDuration(d time.Duration) *Duration {
	v := Duration(d)
	return &v
}

// Seconds returns the duration as a floating point number of seconds.
func (d Duration) Seconds() float64 {
	return time.Duration(d).Seconds()
}
