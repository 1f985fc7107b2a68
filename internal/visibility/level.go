// Package visibility defines the access scope shared by projects and snippets.
package visibility

import (
	"fmt"
	"strings"
)

// Level is ordered from most to least restrictive.
type Level int

const (
	Private  Level = 0
	Internal Level = 10
	Public   Level = 20
)

func (l Level) Valid() bool {
	switch l {
	case Private, Internal, Public:
		return true
	default:
		return false
	}
}

func (l Level) String() string {
	switch l {
	case Private:
		return "private"
	case Internal:
		return "internal"
	case Public:
		return "public"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

func Parse(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "private":
		return Private, nil
	case "internal":
		return Internal, nil
	case "public":
		return Public, nil
	default:
		return Private, fmt.Errorf("invalid visibility: %q", s)
	}
}

func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid visibility level: %d", int(l))
	}
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Min returns the more restrictive of a and b.
func Min(a, b Level) Level {
	if a < b {
		return a
	}
	return b
}
