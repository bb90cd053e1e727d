package suggestion

import (
	"context"
	"sync"
	"github.com/heartmarshall/studioops-backend/internal/domain"
)

var _ eventPublisher = &eventPublisherMock{}

type eventPublisherMock struct {
	PublishFunc func(ctx context.Context, event domain.SuggestionEvent) error

	calls struct {
		Publish []struct {
			Ctx context.Context
			Event domain.SuggestionEvent
		}
	}
	lockPublish sync.RWMutex
}

func (mock *eventPublisherMock) Publish(ctx context.Context, event domain.SuggestionEvent) error {
	if mock.PublishFunc == nil {
		panic("eventPublisherMock.PublishFunc: method is nil but eventPublisher.Publish was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Event domain.SuggestionEvent
	}{
		Ctx: ctx,
		Event: event,
	}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	return mock.PublishFunc(ctx, event)
}

func (mock *eventPublisherMock) PublishCalls() []struct {
	Ctx context.Context
	Event domain.SuggestionEvent
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}
