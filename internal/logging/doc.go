// Package logging provides structured logging for mallas.
//
// This package wraps the zap logger with convenience functions for the
// logging patterns used throughout the controller, the backend client and
// the CLI. Logging is silent unless a level is requested.
//
// # Log Levels
//
//   - Debug: per-field verdicts, HTTP attempts, timer firings
//   - Info: submission transitions, page loads, exports
//   - Warn: skipped result rows, retries, clipboard failures
//   - Error: transport failures that reach the user as a banner
//
// # Structured Logging
//
//	logging.Info("Example applied",
//	    zap.Int("fields", 9),
//	    zap.String("url", "http://127.0.0.1:5000/api/example"),
//	)
//
// # Specialized Logging
//
//	logging.LogVerdict("R1", "0.05", false, "La resistencia debe estar entre 0.1Ω y 1000Ω")
//	logging.LogTransition("editing", "submit", "submitting")
//	logging.LogHTTPRequest("GET", url, 1)
//	logging.LogHTTPResponse("GET", url, 200, len(body), elapsed)
//
// # Configuration
//
// Commands initialize logging once at startup:
//
//	if err := logging.Initialize(logLevel); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// The interactive UI redirects output to a file:
//
//	logging.InitializeWithOptions(logging.Options{Level: "debug", File: path})
//
// # Environment
//
// MALLAS_LOG_LEVEL sets the level when no flag is given. When neither is
// set the global logger is zap.NewNop().
package logging
