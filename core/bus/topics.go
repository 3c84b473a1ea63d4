package bus

// Topic names fixed by spec §4.3. Each is declared as a durable topic
// exchange with a single matching durable work queue bound by routing key
// pattern "#", so every orderId routes to the same queue and per-order FIFO
// ordering is preserved within it.
const (
	TopicOrderCreated      = "order.created"
	TopicOrderStateChanged = "order.state.changed"
	TopicVideoProcessing   = "video.processing"
	TopicOfferAssignment   = "offer.assignment"
	TopicInstagramResults  = "instagram.results"
)

// RetryTopic returns the retry topic name for a base topic (spec §4.3).
func RetryTopic(topic string) string {
	return topic + ".retry"
}

// DLQTopic returns the dead-letter topic name for a base topic (spec §4.3).
func DLQTopic(topic string) string {
	return topic + ".dlq"
}
