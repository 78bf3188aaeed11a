// Package mocks provides in-memory repository implementations for handler
// tests. MockRegRepo mirrors the transactional workflow's semantics (status
// gate, capacity check, duplicate guard, counter bump) so route tests can
// exercise the full decision tree without a database.
package mocks

import (
	"context"
	"errors"
	"time"

	"charityevents/models"
)

type MockEventRepo struct {
	Items map[int64]models.Event
	Err   error // forced failure for store-error paths
}

func (m *MockEventRepo) list(keep func(models.Event) bool) ([]models.Event, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.Event{}
	for _, e := range m.Items {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockEventRepo) GetPublished() ([]models.Event, error) {
	return m.list(func(e models.Event) bool {
		return e.Status == models.StatusUpcoming || e.Status == models.StatusOngoing
	})
}

func (m *MockEventRepo) GetUpcoming(limit int) ([]models.Event, error) {
	events, err := m.list(func(e models.Event) bool { return e.Status == models.StatusUpcoming })
	if err != nil {
		return nil, err
	}
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (m *MockEventRepo) Search(f models.EventFilter) ([]models.Event, error) {
	return m.list(func(e models.Event) bool {
		if f.Date != "" && e.Date != f.Date {
			return false
		}
		if f.Category != "" && e.Category != f.Category {
			return false
		}
		return true
	})
}

func (m *MockEventRepo) GetByID(id int64) (models.Event, error) {
	if m.Err != nil {
		return models.Event{}, m.Err
	}
	e, ok := m.Items[id]
	if !ok {
		return models.Event{}, models.ErrEventNotFound
	}
	return e, nil
}

func (m *MockEventRepo) GetAllAdmin() ([]models.Event, error) {
	return m.list(func(models.Event) bool { return true })
}

func (m *MockEventRepo) Categories() ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	seen := map[string]bool{}
	out := []string{}
	for _, e := range m.Items {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	return out, nil
}

func (m *MockEventRepo) Create(e *models.Event) error {
	if m.Err != nil {
		return m.Err
	}
	e.ID = int64(len(m.Items) + 1)
	m.Items[e.ID] = *e
	return nil
}

func (m *MockEventRepo) Update(e *models.Event) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Items[e.ID]; !ok {
		return models.ErrEventNotFound
	}
	m.Items[e.ID] = *e
	return nil
}

func (m *MockEventRepo) Delete(id int64) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Items[id]; !ok {
		return models.ErrEventNotFound
	}
	delete(m.Items, id)
	return nil
}

func (m *MockEventRepo) Statistics() (models.Statistics, error) {
	if m.Err != nil {
		return models.Statistics{}, m.Err
	}
	var s models.Statistics
	for _, e := range m.Items {
		s.TotalEvents++
		s.TotalParticipants += e.CurrentParticipants
		if e.Status == models.StatusUpcoming {
			s.UpcomingEvents++
		}
		if e.Status == models.StatusCompleted {
			s.CompletedEvents++
		}
	}
	return s, nil
}

type MockRegRepo struct {
	Events *MockEventRepo
	Regs   []models.Registration
	Err    error // forced failure for store-error paths
	nextID int64
}

func (m *MockRegRepo) Register(_ context.Context, eventID int64, p models.Participant, quantity int) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	e, ok := m.Events.Items[eventID]
	if !ok {
		return 0, models.ErrEventNotFound
	}
	if e.Status != models.StatusUpcoming {
		return 0, models.ErrEventNotOpen
	}
	if e.MaxParticipants != nil {
		available := *e.MaxParticipants - e.CurrentParticipants
		if quantity > available {
			return 0, &models.CapacityError{Available: available}
		}
	}
	for _, r := range m.Regs {
		if r.EventID == eventID && r.ParticipantPhone == p.Phone {
			return 0, models.ErrDuplicateRegistration
		}
	}

	m.nextID++
	m.Regs = append(m.Regs, models.Registration{
		ID:               m.nextID,
		EventID:          eventID,
		ParticipantName:  p.Name,
		ParticipantPhone: p.Phone,
		ParticipantEmail: p.Email,
		TicketQuantity:   quantity,
		RegistrationDate: time.Now(),
	})
	e.CurrentParticipants += quantity
	m.Events.Items[eventID] = e
	return m.nextID, nil
}

func (m *MockRegRepo) ListByEvent(eventID int64) ([]models.Registration, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	// Newest first, matching the SQL ordering.
	out := []models.Registration{}
	for i := len(m.Regs) - 1; i >= 0; i-- {
		if m.Regs[i].EventID == eventID {
			out = append(out, m.Regs[i])
		}
	}
	return out, nil
}

type MockAdminRepo struct {
	Admins map[string]models.Admin // keyed by email, plain passwords
}

func (m *MockAdminRepo) Create(a *models.Admin) error {
	if _, ok := m.Admins[a.Email]; ok {
		return errors.New("dup")
	}
	a.ID = int64(len(m.Admins) + 1)
	m.Admins[a.Email] = *a
	return nil
}

func (m *MockAdminRepo) ValidateCredentials(email, plain string) (models.Admin, error) {
	a, ok := m.Admins[email]
	if !ok || a.Password != plain {
		return models.Admin{}, errors.New("invalid credentials")
	}
	return a, nil
}
