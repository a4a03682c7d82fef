// Package logger builds *slog.Logger values with a small set of options and
// provides attribute helpers so that keys stay consistent across packages.
//
//	log := logger.New(
//	    logger.WithEnvironment("development", "signup"),
//	    logger.WithLevelName(os.Getenv("LOG_LEVEL")),
//	)
//	log.Info("value changed",
//	    logger.FormID(id),
//	    logger.Field("email"),
//	    logger.Status("invalid"),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally. Discard returns a logger for callers that do not
// want output, e.g. tests.
package logger
