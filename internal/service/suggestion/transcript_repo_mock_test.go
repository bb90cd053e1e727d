package suggestion

import (
	"context"
	"sync"
	"github.com/google/uuid"
	"github.com/heartmarshall/studioops-backend/internal/domain"
)

var _ transcriptRepo = &transcriptRepoMock{}

type transcriptRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Transcript, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *transcriptRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transcript, error) {
	if mock.GetByIDFunc == nil {
		panic("transcriptRepoMock.GetByIDFunc: method is nil but transcriptRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id uuid.UUID
	}{
		Ctx: ctx,
		Id: id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *transcriptRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}
