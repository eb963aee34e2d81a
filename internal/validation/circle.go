package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	maxCircleNameLen        = 120
	maxCircleDescriptionLen = 2000
)

// ValidateCircleName checks a circle name (English or Arabic) for length.
func ValidateCircleName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("circle name is required")
	}
	if len(trimmed) > maxCircleNameLen {
		return fmt.Errorf("circle name too long (max %d characters)", maxCircleNameLen)
	}
	return nil
}

// ValidateCircleDescription checks a circle description for length.
func ValidateCircleDescription(description string) error {
	if len(description) > maxCircleDescriptionLen {
		return fmt.Errorf("circle description too long (max %d characters)", maxCircleDescriptionLen)
	}
	return nil
}

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateDate checks a YYYY-MM-DD date string.
func ValidateDate(date string) error {
	if !dateRegex.MatchString(date) {
		return fmt.Errorf("date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date: %s", date)
	}
	return nil
}
