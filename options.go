package ecfrag

type options struct {
	logger         *Logger
	metrics        MetricsCollector
	checksumType   ChecksumType
	backendID      BackendID
	backendVersion uint32
}

// Option configures fragment construction and stripe operations.
//
// Options exist to keep logging and metrics caller-supplied capabilities
// instead of package globals, and to avoid exploding the constructor
// surface with per-field variants.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:       NewLogger(nil),
		metrics:      NoopMetricsCollector{},
		checksumType: ChecksumCRC32C,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger configures the logger used for diagnostics such as failed
// magic checks. If nil is passed, the default stderr text logger is used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NewLogger(nil)
		}
		o.logger = l
	}
}

// WithMetricsCollector configures metrics collection.
// If nil is passed, metrics are discarded.
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithChecksumType configures the payload checksum algorithm recorded in
// new fragment headers. The default is ChecksumCRC32C.
func WithChecksumType(t ChecksumType) Option {
	return func(o *options) {
		o.checksumType = t
	}
}

// WithBackend records the producing backend's identity and version in
// new fragment headers.
func WithBackend(id BackendID, version uint32) Option {
	return func(o *options) {
		o.backendID = id
		o.backendVersion = version
	}
}
