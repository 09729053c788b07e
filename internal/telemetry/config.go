package telemetry

// Config holds the OpenTelemetry tracing configuration for one Adaptor
// process.
type Config struct {
	// Enabled turns tracing on. When false, Init installs a no-op tracer
	// and every span becomes free.
	Enabled bool

	// ServiceName is reported to the trace backend as the resource's
	// service.name.
	ServiceName string

	// ServiceVersion is reported as the resource's service.version.
	ServiceVersion string

	// Endpoint is the OTLP/gRPC collector address, e.g. "localhost:4317".
	Endpoint string

	// Insecure disables TLS on the connection to Endpoint.
	Insecure bool

	// SampleRate is the trace sampling ratio, 0.0 to 1.0.
	SampleRate float64
}

// DefaultConfig returns tracing disabled, pointed at a local collector.
func DefaultConfig() Config {
	return Config{
		Enabled:        false,
		ServiceName:    "s3adaptor",
		ServiceVersion: "dev",
		Endpoint:       "localhost:4317",
		Insecure:       true,
		SampleRate:     1.0,
	}
}
