package suggestion

import (
	"context"
	"sync"
	"time"
	"github.com/google/uuid"
	"github.com/heartmarshall/studioops-backend/internal/domain"
)

var _ changeLogRepo = &changeLogRepoMock{}

type changeLogRepoMock struct {
	AppendFunc func(ctx context.Context, suggestionID uuid.UUID, records []domain.ChangeRecord) ([]domain.ChangeRecord, error)
	ListBySuggestionFunc func(ctx context.Context, suggestionID uuid.UUID) ([]domain.ChangeRecord, error)
	MarkRolledBackFunc func(ctx context.Context, suggestionID uuid.UUID, at time.Time) (int64, error)

	calls struct {
		Append []struct {
			Ctx context.Context
			SuggestionID uuid.UUID
			Records []domain.ChangeRecord
		}
		ListBySuggestion []struct {
			Ctx context.Context
			SuggestionID uuid.UUID
		}
		MarkRolledBack []struct {
			Ctx context.Context
			SuggestionID uuid.UUID
			At time.Time
		}
	}
	lockAppend sync.RWMutex
	lockListBySuggestion sync.RWMutex
	lockMarkRolledBack sync.RWMutex
}

func (mock *changeLogRepoMock) Append(ctx context.Context, suggestionID uuid.UUID, records []domain.ChangeRecord) ([]domain.ChangeRecord, error) {
	if mock.AppendFunc == nil {
		panic("changeLogRepoMock.AppendFunc: method is nil but changeLogRepo.Append was just called")
	}
	callInfo := struct {
		Ctx context.Context
		SuggestionID uuid.UUID
		Records []domain.ChangeRecord
	}{
		Ctx: ctx,
		SuggestionID: suggestionID,
		Records: records,
	}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, suggestionID, records)
}

func (mock *changeLogRepoMock) AppendCalls() []struct {
	Ctx context.Context
	SuggestionID uuid.UUID
	Records []domain.ChangeRecord
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}

func (mock *changeLogRepoMock) ListBySuggestion(ctx context.Context, suggestionID uuid.UUID) ([]domain.ChangeRecord, error) {
	if mock.ListBySuggestionFunc == nil {
		panic("changeLogRepoMock.ListBySuggestionFunc: method is nil but changeLogRepo.ListBySuggestion was just called")
	}
	callInfo := struct {
		Ctx context.Context
		SuggestionID uuid.UUID
	}{
		Ctx: ctx,
		SuggestionID: suggestionID,
	}
	mock.lockListBySuggestion.Lock()
	mock.calls.ListBySuggestion = append(mock.calls.ListBySuggestion, callInfo)
	mock.lockListBySuggestion.Unlock()
	return mock.ListBySuggestionFunc(ctx, suggestionID)
}

func (mock *changeLogRepoMock) ListBySuggestionCalls() []struct {
	Ctx context.Context
	SuggestionID uuid.UUID
} {
	mock.lockListBySuggestion.RLock()
	calls := mock.calls.ListBySuggestion
	mock.lockListBySuggestion.RUnlock()
	return calls
}

func (mock *changeLogRepoMock) MarkRolledBack(ctx context.Context, suggestionID uuid.UUID, at time.Time) (int64, error) {
	if mock.MarkRolledBackFunc == nil {
		panic("changeLogRepoMock.MarkRolledBackFunc: method is nil but changeLogRepo.MarkRolledBack was just called")
	}
	callInfo := struct {
		Ctx context.Context
		SuggestionID uuid.UUID
		At time.Time
	}{
		Ctx: ctx,
		SuggestionID: suggestionID,
		At: at,
	}
	mock.lockMarkRolledBack.Lock()
	mock.calls.MarkRolledBack = append(mock.calls.MarkRolledBack, callInfo)
	mock.lockMarkRolledBack.Unlock()
	return mock.MarkRolledBackFunc(ctx, suggestionID, at)
}

func (mock *changeLogRepoMock) MarkRolledBackCalls() []struct {
	Ctx context.Context
	SuggestionID uuid.UUID
	At time.Time
} {
	mock.lockMarkRolledBack.RLock()
	calls := mock.calls.MarkRolledBack
	mock.lockMarkRolledBack.RUnlock()
	return calls
}
