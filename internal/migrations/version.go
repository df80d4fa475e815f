package migrations

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/salesflow/crm/config"
)

// ParseVersion returns the major part of "v3.1" or "3.1". Only majors carry migrations.
func ParseVersion(v string) (float64, error) {
	major, _, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(v), "v"), ".")
	n, err := strconv.Atoi(major)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid version %q", v)
	}
	return float64(n), nil
}

func GetCurrentCodeVersion() (float64, error) {
	return ParseVersion(config.VERSION)
}
