// Package logging provides a minimal logging facade for the gdext binding.
//
// It defines a Logger interface wrapping a subset of log/slog so embedders
// can supply custom implementations for testing or integration with existing
// logging systems, plus a default slog-backed implementation via New:
//
//	logger := logging.New(nil) // slog.Default()
//
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})
//	logger = logging.New(slog.New(handler))
//
// The binding logs negotiation results and other diagnostics through this
// facade only; it never writes to the standard logger directly.
package logging
