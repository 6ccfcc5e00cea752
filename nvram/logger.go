package nvram

// Logger receives the decoder's structured events. Decoded partitions and
// early lenient stops are logged at Debug; failed decodes at Error.
// Arguments alternate keys and values, so a *slog.Logger can be wrapped
// directly:
//
//	type slogAdapter struct{ l *slog.Logger }
//	func (a slogAdapter) Debug(msg string, kv ...interface{}) { a.l.Debug(msg, kv...) }
//	func (a slogAdapter) Info(msg string, kv ...interface{})  { a.l.Info(msg, kv...) }
//	func (a slogAdapter) Error(msg string, kv ...interface{}) { a.l.Error(msg, kv...) }
//
//	dec := nvram.NewDecoder(nvram.WithLogger(slogAdapter{slog.Default()}))
//
// Keys used by the decoder are index, offset, signature, name, pairs,
// trailing, reason and error.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
