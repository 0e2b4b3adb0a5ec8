package services

import "errors"

var (
	ErrInvalidRole        = errors.New("invalid role specified")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrRoleMismatch       = errors.New("role does not match account")
	ErrNoLinkedOwners     = errors.New("relative has not been linked by any primary user")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already in use")
	ErrPrimaryRequired    = errors.New("primary user required")
	ErrUserNotFound       = errors.New("user not found")
	ErrReportNotFound     = errors.New("report not found")
	ErrAccessDenied       = errors.New("access denied to report")
	ErrInvalidDisease     = errors.New("invalid disease type")
	ErrInvalidRange       = errors.New("invalid date range")
)

// ErrUpstreamUnavailable is returned when the prediction service cannot be
// reached or answers with a non-2xx status.
var ErrUpstreamUnavailable = errors.New("prediction service unavailable")
