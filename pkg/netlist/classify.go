package netlist

import (
	"fmt"
	"regexp"
	"strings"
)

// NetClass is the electrical classification of a net. It drives routing
// priority and fallback behavior: power, ground, and bus nets always get a
// drawn wire, signals may degrade to labeled stubs.
type NetClass int

const (
	ClassSignal NetClass = iota
	ClassPower
	ClassGround
	ClassBus
	ClassElectrical // Net-tie style connections that must stay visible
)

var classNames = [...]string{"signal", "power", "ground", "bus", "electrical"}

// String returns the lowercase class name.
func (c NetClass) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "signal"
}

// MarshalJSON encodes the class as its string name.
func (c NetClass) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON decodes a class from its string name.
func (c *NetClass) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	for i, name := range classNames {
		if name == s {
			*c = NetClass(i)
			return nil
		}
	}
	return fmt.Errorf("netlist: unknown net class %q", s)
}

// NeverDegrades reports whether the class must always be drawn as a wire.
// Omitting a power or ground connection would be electrically ambiguous.
func (c NetClass) NeverDegrades() bool {
	return c == ClassPower || c == ClassGround || c == ClassBus || c == ClassElectrical
}

var (
	powerPattern  = regexp.MustCompile(`(?i)^(vcc|vdd|vbat|vbus|vin|vout|[+-]?\d+v\d*|[+-]\d+\.\d+v)\w*$`)
	groundPattern = regexp.MustCompile(`(?i)^(gnd|vss|agnd|dgnd|pgnd|earth|chassis)\w*$`)
	busPattern    = regexp.MustCompile(`(?i)(bus|\[\d+(\.\.|:)\d+\])`)
)

// ClassifyName derives a net class from the net name using the rail and bus
// naming conventions common in schematic capture tools.
func ClassifyName(name string) NetClass {
	switch {
	case name == "":
		return ClassSignal
	case groundPattern.MatchString(name):
		return ClassGround
	case powerPattern.MatchString(name):
		return ClassPower
	case busPattern.MatchString(name):
		return ClassBus
	default:
		return ClassSignal
	}
}
