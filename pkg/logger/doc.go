// Package logger builds log/slog loggers with a small functional-option
// surface: format (text or JSON), level, output writer, and static
// attributes. Stores in this module accept a *slog.Logger option and use it
// for background failures that are absorbed rather than returned.
package logger
