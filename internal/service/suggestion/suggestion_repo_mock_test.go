package suggestion

import (
	"context"
	"sync"
	"github.com/google/uuid"
	"github.com/heartmarshall/studioops-backend/internal/domain"
)

var _ suggestionRepo = &suggestionRepoMock{}

type suggestionRepoMock struct {
	CreateFunc func(ctx context.Context, items []domain.Suggestion) ([]domain.Suggestion, error)
	TransitionFunc func(ctx context.Context, t domain.SuggestionTransition) (*domain.Suggestion, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error)
	GetByIDForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error)
	ListFunc func(ctx context.Context, filter domain.SuggestionFilter) ([]domain.Suggestion, int, error)
	ListByStatusFunc func(ctx context.Context, status domain.SuggestionStatus) ([]domain.Suggestion, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Items []domain.Suggestion
		}
		Transition []struct {
			Ctx context.Context
			T domain.SuggestionTransition
		}
		GetByID []struct {
			Ctx context.Context
			Id uuid.UUID
		}
		GetByIDForUpdate []struct {
			Ctx context.Context
			Id uuid.UUID
		}
		List []struct {
			Ctx context.Context
			Filter domain.SuggestionFilter
		}
		ListByStatus []struct {
			Ctx context.Context
			Status domain.SuggestionStatus
		}
	}
	lockCreate sync.RWMutex
	lockTransition sync.RWMutex
	lockGetByID sync.RWMutex
	lockGetByIDForUpdate sync.RWMutex
	lockList sync.RWMutex
	lockListByStatus sync.RWMutex
}

func (mock *suggestionRepoMock) Create(ctx context.Context, items []domain.Suggestion) ([]domain.Suggestion, error) {
	if mock.CreateFunc == nil {
		panic("suggestionRepoMock.CreateFunc: method is nil but suggestionRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Items []domain.Suggestion
	}{
		Ctx: ctx,
		Items: items,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, items)
}

func (mock *suggestionRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Items []domain.Suggestion
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *suggestionRepoMock) Transition(ctx context.Context, t domain.SuggestionTransition) (*domain.Suggestion, error) {
	if mock.TransitionFunc == nil {
		panic("suggestionRepoMock.TransitionFunc: method is nil but suggestionRepo.Transition was just called")
	}
	callInfo := struct {
		Ctx context.Context
		T domain.SuggestionTransition
	}{
		Ctx: ctx,
		T: t,
	}
	mock.lockTransition.Lock()
	mock.calls.Transition = append(mock.calls.Transition, callInfo)
	mock.lockTransition.Unlock()
	return mock.TransitionFunc(ctx, t)
}

func (mock *suggestionRepoMock) TransitionCalls() []struct {
	Ctx context.Context
	T domain.SuggestionTransition
} {
	mock.lockTransition.RLock()
	calls := mock.calls.Transition
	mock.lockTransition.RUnlock()
	return calls
}

func (mock *suggestionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	if mock.GetByIDFunc == nil {
		panic("suggestionRepoMock.GetByIDFunc: method is nil but suggestionRepo.GetByID was just called")
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

func (mock *suggestionRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *suggestionRepoMock) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	if mock.GetByIDForUpdateFunc == nil {
		panic("suggestionRepoMock.GetByIDForUpdateFunc: method is nil but suggestionRepo.GetByIDForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id uuid.UUID
	}{
		Ctx: ctx,
		Id: id,
	}
	mock.lockGetByIDForUpdate.Lock()
	mock.calls.GetByIDForUpdate = append(mock.calls.GetByIDForUpdate, callInfo)
	mock.lockGetByIDForUpdate.Unlock()
	return mock.GetByIDForUpdateFunc(ctx, id)
}

func (mock *suggestionRepoMock) GetByIDForUpdateCalls() []struct {
	Ctx context.Context
	Id uuid.UUID
} {
	mock.lockGetByIDForUpdate.RLock()
	calls := mock.calls.GetByIDForUpdate
	mock.lockGetByIDForUpdate.RUnlock()
	return calls
}

func (mock *suggestionRepoMock) List(ctx context.Context, filter domain.SuggestionFilter) ([]domain.Suggestion, int, error) {
	if mock.ListFunc == nil {
		panic("suggestionRepoMock.ListFunc: method is nil but suggestionRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Filter domain.SuggestionFilter
	}{
		Ctx: ctx,
		Filter: filter,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *suggestionRepoMock) ListCalls() []struct {
	Ctx context.Context
	Filter domain.SuggestionFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *suggestionRepoMock) ListByStatus(ctx context.Context, status domain.SuggestionStatus) ([]domain.Suggestion, error) {
	if mock.ListByStatusFunc == nil {
		panic("suggestionRepoMock.ListByStatusFunc: method is nil but suggestionRepo.ListByStatus was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Status domain.SuggestionStatus
	}{
		Ctx: ctx,
		Status: status,
	}
	mock.lockListByStatus.Lock()
	mock.calls.ListByStatus = append(mock.calls.ListByStatus, callInfo)
	mock.lockListByStatus.Unlock()
	return mock.ListByStatusFunc(ctx, status)
}

func (mock *suggestionRepoMock) ListByStatusCalls() []struct {
	Ctx context.Context
	Status domain.SuggestionStatus
} {
	mock.lockListByStatus.RLock()
	calls := mock.calls.ListByStatus
	mock.lockListByStatus.RUnlock()
	return calls
}
