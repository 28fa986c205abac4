package cron

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidTimeFormat is returned for execution times that are not
// HH:MM 24-hour strings.
var ErrInvalidTimeFormat = errors.New("execution time must be in HH:MM format")

var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ValidTime reports whether s is a valid HH:MM execution time.
func ValidTime(s string) bool {
	return timePattern.MatchString(s)
}

// ToCronSpec converts an HH:MM execution time into a six-field cron spec
// that fires once per day at that local time.
func ToCronSpec(executionTime string) (string, error) {
	if !ValidTime(executionTime) {
		return "", ErrInvalidTimeFormat
	}

	parts := strings.SplitN(executionTime, ":", 2)
	return fmt.Sprintf("0 %s %s * * *", parts[1], parts[0]), nil
}
