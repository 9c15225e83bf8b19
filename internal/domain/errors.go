package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrDuplicateEmail     = errors.New("email already exists")

	ErrInvalidPeriod       = errors.New("invalid period; allowed: today, week, month, total")
	ErrInvalidRole         = errors.New("invalid role filter; allowed: booker, seller, both")
	ErrInvalidDays         = errors.New("days must be between 1 and 365")
	ErrInvalidDateRange    = errors.New("startDate must be before or equal to endDate")
	ErrInvalidStatus       = errors.New("invalid meeting status")
	ErrInvalidQualityScore = errors.New("quality score must be between 1 and 5")
	ErrQualityNotCompleted = errors.New("quality score can only be set for completed meetings")
	ErrInvalidTimeOrder    = errors.New("startTime must be before endTime")
	ErrNoParticipants      = errors.New("meeting requires at least one booker or seller")
)
