// Package logger provides a context-aware wrapper around Go's slog package
// with functional options, attribute helpers for validation results, and a
// labeled Console for per-component output.
//
// # Factory
//
// New builds a *slog.Logger from Option values:
//
//   - WithDevelopment / WithStaging / WithProduction / WithEnvironment: defaults per environment.
//   - WithFormat / WithTextFormatter / WithJSONFormatter / WithColorFormatter: output format.
//   - WithLevel / WithLevelName: minimum level.
//   - WithAttr: static attributes.
//   - WithContextExtractors / WithContextValue: attributes pulled from context.
//
// The concrete handler is slog's text or JSON handler, or tint's colorized
// handler for FormatColor. It is wrapped in LogHandlerDecorator, which runs
// the registered ContextExtractor callbacks on every record.
//
// # Console
//
// NewConsole returns a Console tagged with a name and a color:
//
//	console := logger.NewConsole("count-hub", "#6495ed")
//	console.Debug("connected", "peers", 3)
//	console.Time("sync")
//	// ...
//	console.TimeEnd("sync") // [count-hub] sync: 12.3ms
//
// Debug, Info and Log render the tag in color through lipgloss; Warn and
// Error keep it plain. NewAutoConsole derives the color from the name with
// ColorFromName. Consoles write through their own logger and never replace
// slog.Default.
//
// # Attributes
//
// Field, Property, Reason, Comparison, Subject and Locale keep attribute keys
// consistent when logging validation outcomes. Error and Errors return an
// empty Attr for nil errors so they can be passed unconditionally:
//
//	log.Info("rule checked", logger.Field("Total"), logger.Error(err))
package logger
