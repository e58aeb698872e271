// Package constants holds domain-wide constant values shared across layers.
package constants

// Pub/Sub provider names accepted in configuration.
const (
	PubSubProviderGoogle = "google"
	PubSubProviderLocal  = "local"
)
