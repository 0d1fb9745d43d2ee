package models

import "errors"

// Custom errors
var (
	ErrNoGames            = errors.New("no playable games after filtering")
	ErrEmptyNetwork       = errors.New("primary network has fewer than two teams")
	ErrDegenerateVariance = errors.New("residual sample has zero variance")
	ErrUnknownMatchMode   = errors.New("unknown team match mode")
	ErrNoValidAttempts    = errors.New("no valid rating attempts to aggregate")
	ErrNoEligibleGames    = errors.New("no games eligible for calibration")
)
