// Package entities holds Result Ingress's (C11) wire type for external
// bot-result records (spec §4.9).
package entities

// ResultStatus enumerates the upstream bot's reported per-record status,
// distinct from Order.status.
type ResultStatus string

// Reported statuses (spec §4.9's derivation table).
const (
	ResultCompleted  ResultStatus = "completed"
	ResultFailed     ResultStatus = "failed"
	ResultPartial    ResultStatus = "partial"
	ResultProcessing ResultStatus = "processing"
	ResultInProgress ResultStatus = "in_progress"
	ResultCancelled  ResultStatus = "cancelled"
)

// BotResult is the payload carried by an instagram.results envelope,
// keyed by ExternalID = order.id (spec §4.9).
type BotResult struct {
	ExternalID   string       `json:"externalId"`
	Status       ResultStatus `json:"status"`
	StartCount   *int64       `json:"startCount,omitempty"`
	Completed    int64        `json:"completed"`
	Failed       int64        `json:"failed"`
}
