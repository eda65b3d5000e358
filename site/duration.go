package site

import "time"

// Duration is a time.Duration that reads and writes as text, like "30s".
type Duration time.Duration

// String formats the duration like time.Duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText writes the duration as text for site.toml.
func (d Duration) MarshalText() (text []byte, err error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText reads a duration such as "10s". On error d is unchanged.
func (d *Duration) UnmarshalText(text []byte) error {
	p, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(p)
	return nil
}
