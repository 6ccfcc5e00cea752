package nvram

// Policy selects how the decoder treats a failure after the first partition.
type Policy int

const (
	// PolicyLenient stops at the first failing partition and returns the
	// partitions decoded so far.
	PolicyLenient Policy = iota

	// PolicyStrict fails the whole decode when any partition after the
	// first does not parse.
	PolicyStrict
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyLenient:
		return "lenient"
	case PolicyStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// Config holds the decoder configuration.
type Config struct {
	// Policy controls trailing-data handling
	Policy Policy

	// Bounded limits each partition to the extent in its header length
	// field instead of scanning pairs up to the next failure
	Bounded bool

	// Logger is used for decode diagnostics (optional)
	Logger Logger
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Policy: PolicyLenient,
		Logger: nopLogger{},
	}
}

// Option is a functional option for configuring the Decoder.
type Option func(*Config)

// WithPolicy sets the trailing-data policy.
//
// Example:
//
//	dec := nvram.NewDecoder(nvram.WithPolicy(nvram.PolicyStrict))
func WithPolicy(policy Policy) Option {
	return func(c *Config) {
		c.Policy = policy
	}
}

// WithStrict is shorthand for WithPolicy(PolicyStrict) when strict is true.
func WithStrict(strict bool) Option {
	return func(c *Config) {
		if strict {
			c.Policy = PolicyStrict
		} else {
			c.Policy = PolicyLenient
		}
	}
}

// WithBounded enables or disables length-bounded partitions.
// The default follows the pair scan only, which can run past the next
// header when a later body contains '=' and NUL bytes.
//
// Example:
//
//	img, err := nvram.ParseImage(data, nvram.WithBounded(true))
func WithBounded(bounded bool) Option {
	return func(c *Config) {
		c.Bounded = bounded
	}
}

// WithLogger sets a logger for decode diagnostics.
//
// Example:
//
//	dec := nvram.NewDecoder(nvram.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}
