package vector

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownUnit is returned by [ConvertLength] for unrecognized unit names.
var ErrUnknownUnit = errors.New("unknown unit")

var units = map[string]float64{
	"px":   1.0,
	"in":   96.0,
	"inch": 96.0,
	"ft":   12 * 96.0,
	"yd":   36 * 96.0,
	"mi":   1760 * 36 * 96.0,
	"mm":   96.0 / 25.4,
	"cm":   96.0 / 2.54,
	"m":    100 * 96.0 / 2.54,
	"km":   100000 * 96.0 / 2.54,
	"pc":   16.0,
	"pt":   96.0 / 72.0,
}

// ConvertLength returns how many working units make one unit of the named
// length unit.
func ConvertLength(unit string) (float64, error) {
	f, ok := units[unit]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return f, nil
}

// Units returns the recognized unit names in sorted order.
func Units() []string {
	out := make([]string, 0, len(units))
	for u := range units {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}
