// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Probe adapters and the analysis client wrap their failures so the
// aggregator and the CLI can log a stable code next to the message.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUnavailable,
//	    "failed to list network interfaces",
//	    cause,
//	    map[string]any{
//	        "collector": "network",
//	    },
//	)
package errors
