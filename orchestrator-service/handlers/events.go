package handlers

import (
	"context"

	"github.com/draftea/order-saga/orchestrator-service/application"
	"github.com/draftea/order-saga/shared/events"
	"github.com/pkg/errors"
)

// OrchestratorEventHandlers binds the saga lifecycle to the orchestrator topics.
// Routing errors are returned so the transport does not acknowledge the message.
type OrchestratorEventHandlers struct {
	orchestrator *application.SagaOrchestrator
}

func NewOrchestratorEventHandlers(orchestrator *application.SagaOrchestrator) *OrchestratorEventHandlers {
	return &OrchestratorEventHandlers{orchestrator: orchestrator}
}

// Register subscribes one handler per lifecycle topic
func (h *OrchestratorEventHandlers) Register(ctx context.Context, subscriber events.Subscriber) error {
	subscriptions := []struct {
		topic   events.Topic
		handler events.EventHandlerFunc
	}{
		{events.StartSagaTopic, h.orchestrator.StartSaga},
		{events.OrchestratorTopic, h.orchestrator.ContinueSaga},
		{events.FinishSuccessTopic, h.orchestrator.FinishSagaSuccess},
		{events.FinishFailTopic, h.orchestrator.FinishSagaFail},
	}

	for _, s := range subscriptions {
		if err := subscriber.Subscribe(ctx, s.topic, s.handler); err != nil {
			return errors.Wrapf(err, "failed to subscribe to %s", s.topic)
		}
	}

	return nil
}
