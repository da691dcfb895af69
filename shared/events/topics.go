package events

// Well-known saga topics
const (
	// Orchestrator inbound topics
	StartSagaTopic     Topic = "saga.start"
	OrchestratorTopic  Topic = "saga.orchestrator"
	FinishSuccessTopic Topic = "saga.finish.success"
	FinishFailTopic    Topic = "saga.finish.fail"

	// Terminal topic consumed by the order service
	NotifyEndingTopic Topic = "saga.notify.ending"

	// Participant topics: success means "do work", fail means "compensate"
	InventorySuccessTopic Topic = "inventory.success"
	InventoryFailTopic    Topic = "inventory.fail"
	PaymentSuccessTopic   Topic = "payment.success"
	PaymentFailTopic      Topic = "payment.fail"
)

// Topics lists every well-known topic
func Topics() []Topic {
	return []Topic{
		StartSagaTopic,
		OrchestratorTopic,
		FinishSuccessTopic,
		FinishFailTopic,
		NotifyEndingTopic,
		InventorySuccessTopic,
		InventoryFailTopic,
		PaymentSuccessTopic,
		PaymentFailTopic,
	}
}
