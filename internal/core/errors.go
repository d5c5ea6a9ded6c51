package core

import "fmt"

// ValidationError rejects a malformed request before any collaborator is
// called. It is fatal and surfaced to the caller verbatim.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}

// GenerationError is a single tier's failure. The orchestrator recovers from
// it by cascading to the next lower tier.
type GenerationError struct {
	Tier Tier
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Tier, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// EmergencyFallbackError is terminal: every tier failed and the emergency
// path failed too. Both causes are retained.
type EmergencyFallbackError struct {
	Original  error
	Emergency error
}

func (e *EmergencyFallbackError) Error() string {
	return fmt.Sprintf("generation failed and emergency fallback failed: %v (original: %v)", e.Emergency, e.Original)
}

func (e *EmergencyFallbackError) Unwrap() []error {
	return []error{e.Original, e.Emergency}
}
