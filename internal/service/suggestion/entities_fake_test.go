package suggestion

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/studioops-backend/internal/domain"
	"github.com/heartmarshall/studioops-backend/internal/service/suggestion/handlers"
)

// entityStore backs the contact and proposal handlers in engine tests and
// takes part in memTx snapshots so aborted decisions leave no rows behind.
type entityStore struct {
	mu        sync.Mutex
	contacts  map[uuid.UUID]domain.Contact
	proposals map[uuid.UUID]domain.Proposal
}

type entitySnapshot struct {
	contacts  map[uuid.UUID]domain.Contact
	proposals map[uuid.UUID]domain.Proposal
}

func newEntityStore() *entityStore {
	return &entityStore{
		contacts:  map[uuid.UUID]domain.Contact{},
		proposals: map[uuid.UUID]domain.Proposal{},
	}
}

func (e *entityStore) snapshot() any {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := entitySnapshot{contacts: map[uuid.UUID]domain.Contact{}, proposals: map[uuid.UUID]domain.Proposal{}}
	for k, v := range e.contacts {
		snap.contacts[k] = v
	}
	for k, v := range e.proposals {
		snap.proposals[k] = v
	}
	return snap
}

func (e *entityStore) restore(v any) {
	snap := v.(entitySnapshot)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.contacts = snap.contacts
	e.proposals = snap.proposals
}

func (e *entityStore) deps() handlers.Deps {
	return handlers.Deps{
		Contacts:  contactStore{e},
		Proposals: proposalStore{e},
	}
}

func (e *entityStore) addProposal(code, fee string) domain.Proposal {
	e.mu.Lock()
	defer e.mu.Unlock()
	d := decimal.RequireFromString(fee)
	p := domain.Proposal{ID: uuid.New(), ProjectCode: code, Fee: &d}
	e.proposals[p.ID] = p
	return p
}

func (e *entityStore) contactCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.contacts)
}

type contactStore struct{ e *entityStore }

func (s contactStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Contact, error) {
	s.e.mu.Lock()
	defer s.e.mu.Unlock()
	c, ok := s.e.contacts[id]
	if !ok {
		return nil, fmt.Errorf("contact %s: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

func (s contactStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.e.mu.Lock()
	defer s.e.mu.Unlock()
	for _, c := range s.e.contacts {
		if strings.EqualFold(c.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (s contactStore) Create(_ context.Context, c domain.Contact) (*domain.Contact, error) {
	s.e.mu.Lock()
	defer s.e.mu.Unlock()
	for _, existing := range s.e.contacts {
		if strings.EqualFold(existing.Email, c.Email) {
			return nil, fmt.Errorf("contact: %w", domain.ErrAlreadyExists)
		}
	}
	s.e.contacts[c.ID] = c
	return &c, nil
}

func (s contactStore) Delete(_ context.Context, id uuid.UUID) error {
	s.e.mu.Lock()
	defer s.e.mu.Unlock()
	if _, ok := s.e.contacts[id]; !ok {
		return fmt.Errorf("contact %s: %w", id, domain.ErrNotFound)
	}
	delete(s.e.contacts, id)
	return nil
}

type proposalStore struct{ e *entityStore }

func (s proposalStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Proposal, error) {
	s.e.mu.Lock()
	defer s.e.mu.Unlock()
	p, ok := s.e.proposals[id]
	if !ok {
		return nil, fmt.Errorf("proposal %s: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

func (s proposalStore) GetByCode(_ context.Context, code string) (*domain.Proposal, error) {
	s.e.mu.Lock()
	defer s.e.mu.Unlock()
	for _, p := range s.e.proposals {
		if p.ProjectCode == code {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("proposal %s: %w", code, domain.ErrNotFound)
}

func (s proposalStore) UpdateFee(_ context.Context, id uuid.UUID, fee *decimal.Decimal, updatedAt time.Time) error {
	s.e.mu.Lock()
	defer s.e.mu.Unlock()
	p, ok := s.e.proposals[id]
	if !ok {
		return fmt.Errorf("proposal %s: %w", id, domain.ErrNotFound)
	}
	p.Fee = fee
	p.UpdatedAt = updatedAt
	s.e.proposals[id] = p
	return nil
}
