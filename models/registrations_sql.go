package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type sqlRegistrationRepo struct{ db *sql.DB }

func NewSQLRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &sqlRegistrationRepo{db}
}

// Register runs the whole reservation as one transaction. The event row is
// locked with SELECT ... FOR UPDATE so that concurrent registrations for the
// same event serialize on the capacity check and the counter increment —
// two callers racing over the last slots cannot both commit.
func (r *sqlRegistrationRepo) Register(ctx context.Context, eventID int64, p Participant, quantity int) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin registration tx: %w", err)
	}
	// No-op after a successful commit; releases the connection on every
	// other exit path.
	defer tx.Rollback()

	var maxParticipants sql.NullInt64
	var current int
	var status string
	err = tx.QueryRowContext(ctx, `
		SELECT max_participants, current_participants, status
		FROM events WHERE id = $1
		FOR UPDATE`, eventID).Scan(&maxParticipants, &current, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrEventNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("lock event row: %w", err)
	}

	if status != StatusUpcoming {
		return 0, ErrEventNotOpen
	}

	// NULL max_participants means unlimited capacity.
	if maxParticipants.Valid {
		available := int(maxParticipants.Int64) - current
		if quantity > available {
			return 0, &CapacityError{Available: available}
		}
	}

	var existing int64
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM event_registrations
		WHERE event_id = $1 AND participant_phone = $2`,
		eventID, p.Phone).Scan(&existing)
	if err == nil {
		return 0, ErrDuplicateRegistration
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("check duplicate registration: %w", err)
	}

	var registrationID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO event_registrations
			(event_id, participant_name, participant_phone, participant_email,
			 participant_age, volunteer_experience, motivation, allow_contact, ticket_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		eventID, p.Name, p.Phone, p.Email,
		p.Age, p.Experience, p.Motivation, p.AllowContact, quantity).Scan(&registrationID)
	if err != nil {
		// UNIQUE(event_id, participant_phone) backstop.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrDuplicateRegistration
		}
		return 0, fmt.Errorf("insert registration: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE events SET current_participants = current_participants + $1
		WHERE id = $2`, quantity, eventID)
	if err != nil {
		return 0, fmt.Errorf("update participant count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit registration tx: %w", err)
	}
	return registrationID, nil
}

func (r *sqlRegistrationRepo) ListByEvent(eventID int64) ([]Registration, error) {
	rows, err := r.db.Query(`
		SELECT id, event_id, participant_name, participant_phone,
		       participant_email, ticket_quantity, registration_date
		FROM event_registrations
		WHERE event_id = $1
		ORDER BY registration_date DESC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := []Registration{}
	for rows.Next() {
		var reg Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.ParticipantName,
			&reg.ParticipantPhone, &reg.ParticipantEmail,
			&reg.TicketQuantity, &reg.RegistrationDate); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
