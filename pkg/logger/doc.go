// Package logger builds the slog loggers used across locmark.
//
// Library packages take a *slog.Logger through a WithLogger option and
// default to [NewNope], so nothing is written unless a logger is injected.
// Template diagnostics (unclosed tokens, conflicting spans, missing
// resolution data) are logged as warnings with token, offset and group
// attributes.
//
// # Process Logger
//
// [New] writes JSON (or text) to stdout. [NewWithSentry] additionally sends
// warnings to Sentry as logs and errors as issues, falling back to stdout
// only when the DSN is empty or Sentry fails to initialize:
//
//	log := logger.NewWithSentry(cfg,
//	    logger.FromContext("request_id", middleware.GetReqID),
//	    logger.FromContext("template", logger.Template),
//	)
//
// # Context Extractors
//
// A [ContextExtractor] turns a context value into an attribute on every
// record. [WithExtractors] decorates any slog.Handler with them.
//
// # Capturing Diagnostics
//
// [Recorder] keeps records in memory and [Tee] fans a logger out to it, so a
// caller can collect the warnings produced while resolving one template:
//
//	rec := logger.NewRecorder(slog.LevelWarn)
//	log := logger.Tee(base, rec)
//	// ... resolve with log ...
//	for _, e := range rec.Entries() {
//	    fmt.Println(e.Message, e.Attrs["token"])
//	}
package logger
