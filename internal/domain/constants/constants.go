// Package constants contains string values shared across layers.
package constants

const (
	// EnvDevelop is the environment name used for local development.
	EnvDevelop = "develop"

	// PubSubProviderLocal pushes events to a local HTTP endpoint.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle publishes events to Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"

	// MailTransportSMTP sends mail synchronously through an SMTP server.
	MailTransportSMTP = "smtp"
	// MailTransportPubSub queues mail for the mail worker.
	MailTransportPubSub = "pubsub"
	// MailTransportLog only logs outbound mail; for development.
	MailTransportLog = "log"

	// StoreDriverPostgres persists data in PostgreSQL.
	StoreDriverPostgres = "postgres"
	// StoreDriverMemory keeps data in process memory.
	StoreDriverMemory = "memory"
)
