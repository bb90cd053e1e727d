package handlers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

// memStore is an in-memory stand-in for the entity repositories. It mirrors
// their error contract: ErrNotFound for missing rows, ErrAlreadyExists for
// unique violations.
type memStore struct {
	mu          sync.Mutex
	proposals   map[uuid.UUID]*domain.Proposal
	projects    map[uuid.UUID]*domain.Project
	emails      map[uuid.UUID]*domain.Email
	transcripts map[uuid.UUID]*domain.Transcript
	contacts    map[uuid.UUID]*domain.Contact
	tasks       map[uuid.UUID]*domain.Task
	links       map[uuid.UUID]*domain.EmailLink

	failWith error
}

func newMemStore() *memStore {
	return &memStore{
		proposals:   map[uuid.UUID]*domain.Proposal{},
		projects:    map[uuid.UUID]*domain.Project{},
		emails:      map[uuid.UUID]*domain.Email{},
		transcripts: map[uuid.UUID]*domain.Transcript{},
		contacts:    map[uuid.UUID]*domain.Contact{},
		tasks:       map[uuid.UUID]*domain.Task{},
		links:       map[uuid.UUID]*domain.EmailLink{},
	}
}

var fixedNow = time.Date(2025, time.June, 11, 9, 0, 0, 0, time.UTC)

func (m *memStore) deps() Deps {
	return Deps{
		Proposals:   proposalFake{m},
		Projects:    projectFake{m},
		Emails:      emailFake{m},
		Transcripts: transcriptFake{m},
		Contacts:    contactFake{m},
		Tasks:       taskFake{m},
		EmailLinks:  linkFake{m},
		Now:         func() time.Time { return fixedNow },
	}
}

func (m *memStore) addProposal(code string, fee string) *domain.Proposal {
	seeded := fixedNow.AddDate(0, 0, -30)
	p := &domain.Proposal{
		ID: uuid.New(), ProjectCode: code, Title: "Proposal " + code,
		CreatedAt: seeded, UpdatedAt: seeded,
	}
	if fee != "" {
		d := decimal.RequireFromString(fee)
		p.Fee = &d
	}
	m.proposals[p.ID] = p
	return p
}

func (m *memStore) addProject(code string) *domain.Project {
	p := &domain.Project{ID: uuid.New(), ProjectCode: code, Name: "Project " + code}
	m.projects[p.ID] = p
	return p
}

func (m *memStore) addEmail(subject string) *domain.Email {
	e := &domain.Email{ID: uuid.New(), Subject: subject, Sender: "client@example.com"}
	m.emails[e.ID] = e
	return e
}

func (m *memStore) addTranscript(title string) *domain.Transcript {
	t := &domain.Transcript{ID: uuid.New(), Title: title}
	m.transcripts[t.ID] = t
	return t
}

func (m *memStore) addContact(email string) *domain.Contact {
	c := &domain.Contact{ID: uuid.New(), Email: strings.ToLower(email), Name: "Existing"}
	m.contacts[c.ID] = c
	return c
}

type proposalFake struct{ m *memStore }

func (f proposalFake) GetByID(_ context.Context, id uuid.UUID) (*domain.Proposal, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if f.m.failWith != nil {
		return nil, f.m.failWith
	}
	p, ok := f.m.proposals[id]
	if !ok {
		return nil, fmt.Errorf("proposal %s: %w", id, domain.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (f proposalFake) GetByCode(_ context.Context, code string) (*domain.Proposal, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if f.m.failWith != nil {
		return nil, f.m.failWith
	}
	for _, p := range f.m.proposals {
		if p.ProjectCode == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("proposal %s: %w", code, domain.ErrNotFound)
}

func (f proposalFake) UpdateFee(_ context.Context, id uuid.UUID, fee *decimal.Decimal, updatedAt time.Time) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	p, ok := f.m.proposals[id]
	if !ok {
		return fmt.Errorf("proposal %s: %w", id, domain.ErrNotFound)
	}
	p.Fee = fee
	p.UpdatedAt = updatedAt
	return nil
}

type projectFake struct{ m *memStore }

func (f projectFake) GetByID(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	p, ok := f.m.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

type emailFake struct{ m *memStore }

func (f emailFake) GetByID(_ context.Context, id uuid.UUID) (*domain.Email, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if f.m.failWith != nil {
		return nil, f.m.failWith
	}
	e, ok := f.m.emails[id]
	if !ok {
		return nil, fmt.Errorf("email %s: %w", id, domain.ErrNotFound)
	}
	return e, nil
}

type transcriptFake struct{ m *memStore }

func (f transcriptFake) GetByID(_ context.Context, id uuid.UUID) (*domain.Transcript, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	t, ok := f.m.transcripts[id]
	if !ok {
		return nil, fmt.Errorf("transcript %s: %w", id, domain.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (f transcriptFake) SetLinks(_ context.Context, id uuid.UUID, proposalID, projectID *uuid.UUID) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	t, ok := f.m.transcripts[id]
	if !ok {
		return fmt.Errorf("transcript %s: %w", id, domain.ErrNotFound)
	}
	t.ProposalID, t.ProjectID = proposalID, projectID
	return nil
}

type contactFake struct{ m *memStore }

func (f contactFake) GetByID(_ context.Context, id uuid.UUID) (*domain.Contact, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	c, ok := f.m.contacts[id]
	if !ok {
		return nil, fmt.Errorf("contact %s: %w", id, domain.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (f contactFake) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if f.m.failWith != nil {
		return false, f.m.failWith
	}
	for _, c := range f.m.contacts {
		if strings.EqualFold(c.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f contactFake) Create(_ context.Context, c domain.Contact) (*domain.Contact, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	for _, existing := range f.m.contacts {
		if strings.EqualFold(existing.Email, c.Email) {
			return nil, fmt.Errorf("contact %s: %w", c.Email, domain.ErrAlreadyExists)
		}
	}
	f.m.contacts[c.ID] = &c
	cp := c
	return &cp, nil
}

func (f contactFake) Delete(_ context.Context, id uuid.UUID) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if _, ok := f.m.contacts[id]; !ok {
		return fmt.Errorf("contact %s: %w", id, domain.ErrNotFound)
	}
	delete(f.m.contacts, id)
	return nil
}

type taskFake struct{ m *memStore }

func (f taskFake) GetByID(_ context.Context, id uuid.UUID) (*domain.Task, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	t, ok := f.m.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return t, nil
}

func (f taskFake) Create(_ context.Context, t domain.Task) (*domain.Task, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if t.Status == "" {
		t.Status = "open"
	}
	f.m.tasks[t.ID] = &t
	cp := t
	return &cp, nil
}

func (f taskFake) Delete(_ context.Context, id uuid.UUID) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if _, ok := f.m.tasks[id]; !ok {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	delete(f.m.tasks, id)
	return nil
}

type linkFake struct{ m *memStore }

func (f linkFake) Exists(_ context.Context, kind domain.EntityKind, emailID, targetID uuid.UUID) (bool, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	for _, l := range f.m.links {
		if l.Kind == kind && l.EmailID == emailID && l.TargetID == targetID {
			return true, nil
		}
	}
	return false, nil
}

func (f linkFake) Create(_ context.Context, link domain.EmailLink) (*domain.EmailLink, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	for _, l := range f.m.links {
		if l.Kind == link.Kind && l.EmailID == link.EmailID && l.TargetID == link.TargetID {
			return nil, fmt.Errorf("%s: %w", link.Kind, domain.ErrAlreadyExists)
		}
	}
	f.m.links[link.ID] = &link
	cp := link
	return &cp, nil
}

func (f linkFake) Delete(_ context.Context, kind domain.EntityKind, id uuid.UUID) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	l, ok := f.m.links[id]
	if !ok || l.Kind != kind {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	delete(f.m.links, id)
	return nil
}
