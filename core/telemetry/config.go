package telemetry

// Config holds the tracing exporter settings.
type Config struct {
	// OTLPEndpoint is an OTLP/HTTP collector, e.g. http://localhost:4318. Empty disables export.
	OTLPEndpoint string `mapstructure:"otlp_endpoint" default:""`
	// ServiceName is reported as the service.name resource attribute.
	ServiceName string `mapstructure:"service_name" default:"bom-reconciler"`
}
