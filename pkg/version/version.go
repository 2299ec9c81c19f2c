// Package version models the supported game versions and the total order
// the mechanics branch on.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a dotted game version. Components compare numerically;
// missing components are zero, so "1.5" and "1.5.0" are the same version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// The versions whose mechanics differ. Intermediate releases behave like
// the nearest listed version below them.
var (
	V1_3   = Version{1, 3, 0}
	V1_4   = Version{1, 4, 0}
	V1_5   = Version{1, 5, 0}
	V1_5_3 = Version{1, 5, 3}
	V1_6   = Version{1, 6, 0}
)

// Supported lists the accepted wire values in ascending order.
var Supported = []Version{V1_3, V1_4, V1_5, V1_5_3, V1_6}

// Parse converts a dotted wire string such as "1.5.3" into a Version.
func Parse(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) == 0 || len(parts) > 3 {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version %q: bad component %q", s, p)
		}
		nums[i] = n
	}

	v := Version{nums[0], nums[1], nums[2]}
	for _, known := range Supported {
		if v == known {
			return v, nil
		}
	}
	return Version{}, fmt.Errorf("unsupported version %q", s)
}

// MustParse is Parse for trusted literals; it panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1, 0, or 1 as v sorts before, equal to, or after o.
func (v Version) Compare(o Version) int {
	for _, d := range [3]int{v.Major - o.Major, v.Minor - o.Minor, v.Patch - o.Patch} {
		if d < 0 {
			return -1
		}
		if d > 0 {
			return 1
		}
	}
	return 0
}

// AtLeast reports v >= o.
func (v Version) AtLeast(o Version) bool { return v.Compare(o) >= 0 }

// Before reports v < o.
func (v Version) Before(o Version) bool { return v.Compare(o) < 0 }

// String renders the dotted wire form, omitting a zero patch component.
func (v Version) String() string {
	if v.Patch == 0 {
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// MarshalJSON encodes the version as its wire string.
func (v Version) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(v.String())), nil
}

// UnmarshalJSON decodes a wire string into a supported version.
func (v *Version) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("version must be a string: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
