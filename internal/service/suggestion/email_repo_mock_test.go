package suggestion

import (
	"context"
	"sync"
	"github.com/google/uuid"
	"github.com/heartmarshall/studioops-backend/internal/domain"
)

var _ emailRepo = &emailRepoMock{}

type emailRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Email, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *emailRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Email, error) {
	if mock.GetByIDFunc == nil {
		panic("emailRepoMock.GetByIDFunc: method is nil but emailRepo.GetByID was just called")
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

func (mock *emailRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}
