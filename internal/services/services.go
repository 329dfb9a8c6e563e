package services

import (
	"errors"
	"fmt"

	"github.com/strivetrack/strivetrack-api/internal/metrics"
	"github.com/strivetrack/strivetrack-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")
)

// lookupError maps a missing row to the domain sentinel and wraps anything else.
func lookupError(err error, notFound error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("failed to find %s: %w", what, err)
}

// dayOrToday validates an optional YYYY-MM-DD value and defaults it to today.
func dayOrToday(day string) (string, error) {
	if day == "" {
		return utils.Today(), nil
	}
	if _, err := utils.ParseDay(day); err != nil {
		return "", ErrInvalidDate
	}
	return day, nil
}

// bestEffort logs and counts a failed auxiliary step. The caller carries on.
func bestEffort(log *zap.Logger, operation string, err error, fields ...zap.Field) {
	metrics.BestEffortFailures.WithLabelValues(operation).Inc()
	log.Warn(operation+"_failed", append(fields, zap.Error(err))...)
}
