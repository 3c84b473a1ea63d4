package bus

import "time"

// Envelope is the message shape carried on every topic, modeled on the
// spec §6.1 representative `video.processing` envelope and generalized to
// every topic the bus carries (fields unused by a given topic are left
// zero-valued).
type Envelope struct {
	OrderID          string                 `json:"orderId"`
	Key              string                 `json:"key"`
	VideoID          string                 `json:"videoId,omitempty"`
	OriginalURL      string                 `json:"originalUrl,omitempty"`
	TargetQuantity   uint32                 `json:"targetQuantity,omitempty"`
	Priority         string                 `json:"priority,omitempty"`
	ProcessingType   string                 `json:"processingType,omitempty"`
	AttemptNumber    uint8                  `json:"attemptNumber"`
	MaxAttempts      uint8                  `json:"maxAttempts"`
	CreatedAt        time.Time              `json:"createdAt"`
	ScheduleAt       *time.Time             `json:"scheduleAt,omitempty"`
	UserID           uint64                 `json:"userId,omitempty"`
	GeoTargeting     string                 `json:"geoTargeting,omitempty"`
	ClipCreationOK   bool                   `json:"clipCreationEnabled,omitempty"`
	ProcessingConfig map[string]interface{} `json:"processingConfig,omitempty"`
	Metadata         map[string]string      `json:"metadata,omitempty"`

	// Payload carries the topic-specific body (e.g. the offer-assignment
	// fields, or the raw instagram.results record) as opaque JSON, decoded
	// by the consumer that understands this topic.
	Payload []byte `json:"payload,omitempty"`
}

// FailureMetadata is appended to the original envelope when a message is
// routed to a DLQ (spec §4.3, §6.1: "failedAt, errorKind, errorMessage").
type FailureMetadata struct {
	Envelope     Envelope  `json:"envelope"`
	FailedAt     time.Time `json:"failedAt"`
	ErrorKind    string    `json:"errorKind"`
	ErrorMessage string    `json:"errorMessage"`
}

// ReadyAt reports whether the envelope's scheduled delay, if any, has
// elapsed.
func (e Envelope) ReadyAt(now time.Time) bool {
	return e.ScheduleAt == nil || !now.Before(*e.ScheduleAt)
}

// NextAttempt returns a copy of e advanced to the next retry attempt, with
// scheduleAt computed via exponential backoff from attemptNumber.
func (e Envelope) NextAttempt(backoffBase time.Duration) Envelope {
	next := e
	next.AttemptNumber++
	delay := backoffBase << (next.AttemptNumber - 1)
	scheduleAt := time.Now().Add(delay)
	next.ScheduleAt = &scheduleAt
	return next
}

// Exhausted reports whether the envelope has used its full retry budget.
func (e Envelope) Exhausted() bool {
	return e.AttemptNumber >= e.MaxAttempts
}
