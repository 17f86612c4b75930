package gather

import (
	"regexp"
	"strconv"
)

// floorPattern matches unit strings like "#03-12" or "3-12" at the start of
// the unit. Basement units ("B1-02") intentionally do not match: the floor
// field stays empty for them.
var floorPattern = regexp.MustCompile(`^#?(\d+)-`)

// ParseFloor extracts the floor number from a unit string. Leading zeros are
// stripped, so "#03-12" yields "3". Returns "" when no floor is recognizable.
func ParseFloor(unit string) string {
	m := floorPattern.FindStringSubmatch(unit)
	if m == nil {
		return ""
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return ""
	}
	return strconv.Itoa(n)
}
