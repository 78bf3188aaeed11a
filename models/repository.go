package models

import (
	"context"
	"time"
)

// Event is a charity activity. Nullable columns are pointers so the JSON
// mirrors the relational schema (null, not zero values).
type Event struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	Category            string  `json:"category"`
	Date                string  `json:"date"` // YYYY-MM-DD
	Time                *string `json:"time"` // HH:MM:SS, null when unset
	Location            string  `json:"location"`
	Organizer           *string `json:"organizer"`
	MaxParticipants     *int    `json:"max_participants"` // null = unlimited
	CurrentParticipants int     `json:"current_participants"`
	RegistrationFee     float64 `json:"registration_fee"`
	ContactInfo         *string `json:"contact_info"`
	Status              string  `json:"status"`
	Description         *string `json:"description"`
	ImageURL            *string `json:"image_url"`
}

// Event status lifecycle. Registration is only accepted while upcoming.
const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is a known lifecycle stage.
func ValidStatus(s string) bool {
	switch s {
	case StatusUpcoming, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// EventFilter narrows a search. Zero values mean "no constraint".
type EventFilter struct {
	Date     string // exact match, YYYY-MM-DD
	Location string // substring match
	Category string // exact match
}

// Statistics is the admin dashboard summary.
type Statistics struct {
	TotalEvents       int `json:"totalEvents"`
	UpcomingEvents    int `json:"upcomingEvents"`
	TotalParticipants int `json:"totalParticipants"`
	CompletedEvents   int `json:"completedEvents"`
}

// ===== Events =====
type EventRepository interface {
	GetPublished() ([]Event, error)         // upcoming|ongoing, date ASC
	GetUpcoming(limit int) ([]Event, error) // date >= today AND upcoming
	Search(f EventFilter) ([]Event, error)
	GetByID(id int64) (Event, error)
	GetAllAdmin() ([]Event, error) // every status, date DESC
	Categories() ([]string, error)
	Create(e *Event) error
	Update(e *Event) error
	Delete(id int64) error // cascades over registrations in one tx
	Statistics() (Statistics, error)
}

// Registration is one participant's ticket reservation against an event.
// Rows are created only by the registration workflow and never updated.
type Registration struct {
	ID               int64     `json:"id"`
	EventID          int64     `json:"event_id"`
	ParticipantName  string    `json:"participant_name"`
	ParticipantPhone string    `json:"participant_phone"`
	ParticipantEmail string    `json:"participant_email"`
	TicketQuantity   int       `json:"ticket_quantity"`
	RegistrationDate time.Time `json:"registration_date"`
}

// Participant carries the registration form fields. Name and Phone are the
// only mandatory ones; Phone doubles as the duplicate-registration key.
type Participant struct {
	Name         string
	Phone        string
	Email        string
	Age          string
	Experience   string
	Motivation   string
	AllowContact bool
}

// ===== Registrations =====
type RegistrationRepository interface {
	// Register reserves quantity tickets for p on the event, atomically
	// inserting the registration row and bumping current_participants.
	// Fails with ErrEventNotFound, ErrEventNotOpen, *CapacityError or
	// ErrDuplicateRegistration; anything else is a store failure.
	Register(ctx context.Context, eventID int64, p Participant, quantity int) (int64, error)
	ListByEvent(eventID int64) ([]Registration, error)
}

// ===== Admins =====
type Admin struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

type AdminRepository interface {
	Create(a *Admin) error
	ValidateCredentials(email, plain string) (Admin, error)
}
