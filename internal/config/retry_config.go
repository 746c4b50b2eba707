package config

import (
	"time"
)

// ReportRetryConfig controls the full-AI layer of the report pipeline.
type ReportRetryConfig struct {
	// Attempts is the total number of full-AI attempts, including the first.
	Attempts int
	// Interval is the constant pause between attempts.
	Interval time.Duration
}

// GetReportRetryConfig returns retry settings appropriate for the current environment.
// In test environments the pause is shortened so fallbacks are reached quickly.
func (c Config) GetReportRetryConfig() ReportRetryConfig {
	if c.IsTest() {
		return ReportRetryConfig{Attempts: c.AssessReportAttempts, Interval: time.Millisecond}
	}
	return ReportRetryConfig{Attempts: c.AssessReportAttempts, Interval: c.AssessReportRetryInterval}
}
