// Package flagtypes provides pflag.Value implementations that carry the extra
// metadata go-clidocs renders in table-style option listings: the closed set
// of a choice flag, the bounds of a numeric range and the layouts accepted by
// a date/time flag.
//
// The values work with any pflag.FlagSet:
//
//	var format string
//	cmd.Flags().Var(flagtypes.NewChoice(&format, "json", "json", "yaml"), "format", "output format")
package flagtypes

import (
	"fmt"
	"strings"
)

// Choice is a string flag restricted to a fixed set of values.
type Choice struct {
	target  *string
	choices []string
}

// NewChoice binds target to a choice flag. The default is assigned without
// validation so callers may start from an empty value.
func NewChoice(target *string, def string, choices ...string) *Choice {
	*target = def
	return &Choice{target: target, choices: append([]string(nil), choices...)}
}

func (c *Choice) String() string {
	if c.target == nil {
		return ""
	}
	return *c.target
}

func (c *Choice) Set(value string) error {
	for _, choice := range c.choices {
		if value == choice {
			*c.target = value
			return nil
		}
	}
	return fmt.Errorf("%q is not one of %s", value, strings.Join(c.choices, ", "))
}

func (c *Choice) Type() string { return "choice" }

// Choices returns the accepted values in declaration order.
func (c *Choice) Choices() []string {
	return append([]string(nil), c.choices...)
}
