package conf

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration is a time.Duration that is written to JSON as a Go duration
// string ("1.5s"). Bare integers are read as nanoseconds.
type Duration time.Duration

func (d Duration) D() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(bs []byte) error {
	var s string
	if err := json.Unmarshal(bs, &s); err != nil {
		var n int64
		if e := json.Unmarshal(bs, &n); e != nil {
			return fmt.Errorf("duration: %w", err)
		}
		*d = Duration(n)
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Load decodes the JSON file at path over v. Fields absent from the file
// keep the values v already holds, so callers pass in their defaults.
func Load(path string, v interface{}) error {
	bs, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(bs, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
