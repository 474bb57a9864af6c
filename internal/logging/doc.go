// Package logging builds slog loggers for reelsync commands.
//
// Two output formats are supported: a compact console format for
// interactive use and JSON for machine consumption. Loggers carry a
// "component" attribute identifying the subsystem that emitted a record;
// the console handler lifts it into the message prefix.
package logging
