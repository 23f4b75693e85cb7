package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	LookupTimeout      = 2 * time.Minute
)

const (
	SoloQueueType = "RANKED_SOLO_5x5"
)

const (
	MaxPromptAttempts = 5
)

const (
	ShutdownTimeout = 5 * time.Second
)
