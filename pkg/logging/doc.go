// Package logging provides structured logging utilities for hostprobe.
//
// # Overview
//
// This package wraps the standard library slog package with hostprobe defaults
// and conventions for consistent logging across all components. It supports
// environment-based log level configuration, module/version context injection,
// and automatic source location tracking for debug logs.
//
// # Features
//
//   - Structured JSON logging to stderr
//   - Environment-based log level configuration (LOG_LEVEL)
//   - Automatic module and version context
//   - Source location tracking for debug logs
//   - Flexible log level parsing
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended), with the level resolved from
// LOG_LEVEL when the argument is empty:
//
//	func main() {
//	    logging.SetDefaultStructuredLoggerWithLevel("hostprobe", "v1.0.0", "")
//
//	    // Use slog as normal
//	    slog.Info("processing request", "id", "req-123")
//	    slog.Debug("detailed state", "data", complexObject)
//	    slog.Error("operation failed", "error", err)
//	}
//
// Creating a custom logger:
//
//	logger := logging.NewStructuredLogger("hostprobe", "v2.0.0", "debug")
//	logger.Info("collection started", "collectors", 5)
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("cli", "v1.0.0", "warn")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug hostprobe snapshot
//	LOG_LEVEL=error hostprobe analyze
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "snapshot collected",
//	    "module": "hostprobe",
//	    "version": "v1.0.0",
//	    "failed": 0
//	}
//
// Debug logs include source location:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "DEBUG",
//	    "source": {
//	        "function": "snapshotter.(*HostSnapshotter).Collect",
//	        "file": "snapshot.go",
//	        "line": 45
//	    },
//	    "msg": "collecting section",
//	    "module": "hostprobe",
//	    "version": "v1.0.0"
//	}
//
// # Integration
//
// This package is used by:
//   - pkg/cli - CLI command logging
//   - pkg/collector - Probe logging
//   - pkg/snapshotter - Collection logging
//   - pkg/analyzer - Remote analysis logging
//
// All components share consistent logging format and configuration.
package logging
