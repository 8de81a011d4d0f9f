package harness

import (
	"fmt"
	"strings"
)

// Mode selects the verification style of a generated test.
type Mode int

const (
	ModeLowLevel Mode = iota + 1
	ModeSymbolicAssertion
)

// Modes returns the recognized modes.
func Modes() []Mode {
	return []Mode{ModeLowLevel, ModeSymbolicAssertion}
}

// ParseMode parses a mode name. The runner names "cpu-runner" and
// "iree" are accepted as aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low-level", "cpu-runner":
		return ModeLowLevel, nil
	case "symbolic-assertion", "iree":
		return ModeSymbolicAssertion, nil
	default:
		return 0, fmt.Errorf("invalid mode %q: must be low-level or symbolic-assertion", s)
	}
}

// String returns the canonical mode name.
func (m Mode) String() string {
	switch m {
	case ModeLowLevel:
		return "low-level"
	case ModeSymbolicAssertion:
		return "symbolic-assertion"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
