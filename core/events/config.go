package events

// Config holds the domain event transport settings.
type Config struct {
	// NatsURL enables JetStream publishing when set (e.g. nats://localhost:4222).
	NatsURL string `mapstructure:"nats_url" default:""`
	// SubjectPrefix is prepended to every event subject.
	SubjectPrefix string `mapstructure:"subject_prefix" default:"reconcile"`
}
