package engine

import (
	"errors"
	"fmt"
)

// RuntimeError represents an anomaly detected while running a generator.
//
// Runtime errors include:
//   - Zero maximum weight: phase one never saw a positive weight, so no
//     rejection envelope exists
//   - Trial limit: phase two hit the configured trial cap before producing
//     the requested events
//   - Phase order: a phase was started out of sequence
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Process names the process being generated.
	Process string

	// Details contains additional context.
	Details map[string]string
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeZeroMaxWeight indicates phase one produced no positive weight.
	ErrCodeZeroMaxWeight RuntimeErrorCode = "ZERO_MAX_WEIGHT"

	// ErrCodeTrialLimit indicates phase two exceeded its trial cap.
	ErrCodeTrialLimit RuntimeErrorCode = "TRIAL_LIMIT"

	// ErrCodePhaseOrder indicates Integrate/Generate were called out of order.
	ErrCodePhaseOrder RuntimeErrorCode = "PHASE_ORDER"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Process != "" {
		return fmt.Sprintf("%s: %s (process=%s)", e.Code, e.Message, e.Process)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func hasCode(err error, codes ...RuntimeErrorCode) bool {
	var re *RuntimeError
	if !errors.As(err, &re) {
		return false
	}
	for _, c := range codes {
		if re.Code == c {
			return true
		}
	}
	return false
}

// IsDegenerate reports whether err signals statistical degeneracy: a zero
// rejection envelope or an efficiency so low the trial cap was reached.
// Uses errors.As to handle wrapped errors.
func IsDegenerate(err error) bool {
	return hasCode(err, ErrCodeZeroMaxWeight, ErrCodeTrialLimit)
}

// IsPhaseOrderError reports whether err is a phase-order violation.
func IsPhaseOrderError(err error) bool {
	return hasCode(err, ErrCodePhaseOrder)
}

// NewZeroMaxWeightError creates a RuntimeError for an empty envelope.
func NewZeroMaxWeightError(process string, maxWeight float64) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeZeroMaxWeight,
		Message: "maximum weight from integration is not positive",
		Process: process,
		Details: map[string]string{
			"max_weight": fmt.Sprintf("%g", maxWeight),
		},
	}
}

// NewTrialLimitError creates a RuntimeError for an exhausted trial cap.
func NewTrialLimitError(process string, stats Stats, requested int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeTrialLimit,
		Message: fmt.Sprintf("trial limit reached after %d trials (%d/%d events accepted)", stats.Trials, stats.Accepted, requested),
		Process: process,
		Details: map[string]string{
			"trials":     fmt.Sprintf("%d", stats.Trials),
			"accepted":   fmt.Sprintf("%d", stats.Accepted),
			"requested":  fmt.Sprintf("%d", requested),
			"efficiency": fmt.Sprintf("%g", stats.Efficiency()),
		},
	}
}

// NewPhaseOrderError creates a RuntimeError for an out-of-order phase.
func NewPhaseOrderError(process string, want, got State) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodePhaseOrder,
		Message: fmt.Sprintf("generator is %s, expected %s", got, want),
		Process: process,
	}
}
