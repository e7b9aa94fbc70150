package shared

// Asynq task types
const (
	TypeWelcomeEmail  = "email:welcome"
	TypeOrphanCleanup = "maintenance:orphan_cleanup"
)

// Asynq queue names
const (
	QueueDefault     = "default"
	QueueEmail       = "email"
	QueueMaintenance = "maintenance"
)
