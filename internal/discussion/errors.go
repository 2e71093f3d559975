package discussion

import "errors"

// Validation errors: surfaced synchronously before any generation call.
var (
	ErrInvalidRoleCount          = errors.New("discussion: role count must be between 2 and 4")
	ErrInvalidInterventionLength = errors.New("discussion: intervention must be 20-250 characters")
	ErrNoTargetRoles             = errors.New("discussion: intervention needs at least one target role")
	ErrUnsafeInput               = errors.New("discussion: intervention contains unsafe content")
)

// Lifecycle errors: the caller must re-fetch session state before retrying.
var (
	ErrSessionNotActive            = errors.New("discussion: session is not active")
	ErrNotAwaitingInput            = errors.New("discussion: session is not awaiting user input")
	ErrTurnBudgetExhausted         = errors.New("discussion: turn budget exhausted")
	ErrInterventionBudgetExhausted = errors.New("discussion: intervention budget exhausted")
)

// ErrReportGeneration wraps a gateway failure for the single aggregate
// report call; the caller is expected to retry the whole operation.
var ErrReportGeneration = errors.New("discussion: report generation failed")
