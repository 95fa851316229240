package domain

import "errors"

var (
	// ErrNoHistory means the report directory holds no usable debt reports.
	ErrNoHistory = errors.New("no debt report history")
	// ErrReportNotFound means a report path does not exist at open time.
	ErrReportNotFound = errors.New("report not found")
)
