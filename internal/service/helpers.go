package service

import (
	"time"

	"github.com/rakibul58/mpms-backend/internal/domain"
)

// validateProjectDates requires endDate >= startDate when an end date is
// present.
func validateProjectDates(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return domain.Validation("invalid date range", domain.FieldError{
			Field:   "endDate",
			Message: "must not be before startDate",
		})
	}
	return nil
}

// validateSprintDates requires a strictly positive sprint duration.
func validateSprintDates(start, end time.Time) error {
	if !end.After(start) {
		return domain.Validation("invalid date range", domain.FieldError{
			Field:   "endDate",
			Message: "must be after startDate",
		})
	}
	return nil
}

// percent computes a rounded completion percentage, 0 for an empty total.
func percent(completed, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(float64(completed)/float64(total)*100 + 0.5)
}
