package engine

import (
	"time"
)

const (
	// DefaultNodeTimeout bounds a single node execution when the node config
	// carries no timeout_seconds.
	DefaultNodeTimeout = 30 * time.Second

	// retryDelay is the fixed pause between retry attempts.
	retryDelay = 250 * time.Millisecond
)

// Error handling modes a node config may select via error_handling.
const (
	ErrorHandlingStop     = "stop"
	ErrorHandlingContinue = "continue"
	ErrorHandlingRetry    = "retry"
)

// nodePolicy is the per-node execution policy read from the reserved config
// keys. Unset keys fall back to defaults.
type nodePolicy struct {
	Timeout       time.Duration
	Retries       int
	ErrorHandling string
}

func policyFromConfig(config map[string]any) nodePolicy {
	policy := nodePolicy{
		Timeout:       DefaultNodeTimeout,
		Retries:       0,
		ErrorHandling: ErrorHandlingStop,
	}

	if seconds, ok := config["timeout_seconds"].(float64); ok && seconds > 0 {
		policy.Timeout = time.Duration(seconds * float64(time.Second))
	}

	if retries, ok := config["retries"].(float64); ok && retries > 0 {
		policy.Retries = int(retries)
	}

	if mode, ok := config["error_handling"].(string); ok && mode != "" {
		policy.ErrorHandling = mode
	}

	// Retry mode without a retry budget still gets one retry.
	if policy.ErrorHandling == ErrorHandlingRetry && policy.Retries == 0 {
		policy.Retries = 1
	}

	return policy
}

// attempts returns the total number of execution attempts the policy allows.
// The retry budget applies regardless of error handling mode; the mode only
// decides what happens once the budget is exhausted.
func (p nodePolicy) attempts() int {
	return p.Retries + 1
}
