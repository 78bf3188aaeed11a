package models

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type sqlEventRepo struct{ db *sql.DB }

func NewSQLEventRepository(db *sql.DB) EventRepository { return &sqlEventRepo{db} }

// time is selected as text so it scans as the canonical HH:MM:SS string.
const eventColumns = `id, name, category, date, time::text, location, organizer,
	max_participants, current_participants, registration_fee, contact_info,
	status, description, image_url`

func scanEvent(row interface{ Scan(...any) error }) (Event, error) {
	var e Event
	var date time.Time
	var eventTime, organizer, contactInfo, description, imageURL sql.NullString
	var maxParticipants sql.NullInt64
	err := row.Scan(&e.ID, &e.Name, &e.Category, &date, &eventTime, &e.Location,
		&organizer, &maxParticipants, &e.CurrentParticipants, &e.RegistrationFee,
		&contactInfo, &e.Status, &description, &imageURL)
	if err != nil {
		return Event{}, err
	}
	e.Date = date.Format("2006-01-02")
	if eventTime.Valid {
		e.Time = &eventTime.String
	}
	if organizer.Valid {
		e.Organizer = &organizer.String
	}
	if maxParticipants.Valid {
		m := int(maxParticipants.Int64)
		e.MaxParticipants = &m
	}
	if contactInfo.Valid {
		e.ContactInfo = &contactInfo.String
	}
	if description.Valid {
		e.Description = &description.String
	}
	if imageURL.Valid {
		e.ImageURL = &imageURL.String
	}
	return e, nil
}

func (r *sqlEventRepo) queryEvents(query string, args ...any) ([]Event, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *sqlEventRepo) GetPublished() ([]Event, error) {
	return r.queryEvents(`SELECT ` + eventColumns + ` FROM events
		WHERE status = 'upcoming' OR status = 'ongoing'
		ORDER BY date ASC`)
}

func (r *sqlEventRepo) GetUpcoming(limit int) ([]Event, error) {
	return r.queryEvents(`SELECT `+eventColumns+` FROM events
		WHERE date >= CURRENT_DATE AND status = 'upcoming'
		ORDER BY date ASC
		LIMIT $1`, limit)
}

func (r *sqlEventRepo) Search(f EventFilter) ([]Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	args := []any{}
	if f.Date != "" {
		args = append(args, f.Date)
		query += fmt.Sprintf(" AND date = $%d", len(args))
	}
	if f.Location != "" {
		args = append(args, "%"+f.Location+"%")
		query += fmt.Sprintf(" AND location ILIKE $%d", len(args))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	query += " ORDER BY date ASC"
	return r.queryEvents(query, args...)
}

func (r *sqlEventRepo) GetByID(id int64) (Event, error) {
	row := r.db.QueryRow(`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, ErrEventNotFound
	}
	return e, err
}

func (r *sqlEventRepo) GetAllAdmin() ([]Event, error) {
	return r.queryEvents(`SELECT ` + eventColumns + ` FROM events ORDER BY date DESC`)
}

func (r *sqlEventRepo) Categories() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT category FROM events ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *sqlEventRepo) Create(e *Event) error {
	return r.db.QueryRow(`
		INSERT INTO events
			(name, category, date, time, location, organizer, max_participants,
			 registration_fee, contact_info, status, description, image_url,
			 current_participants)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0)
		RETURNING id`,
		e.Name, e.Category, e.Date, e.Time, e.Location, e.Organizer,
		e.MaxParticipants, e.RegistrationFee, e.ContactInfo, e.Status,
		e.Description, e.ImageURL).Scan(&e.ID)
}

func (r *sqlEventRepo) Update(e *Event) error {
	res, err := r.db.Exec(`
		UPDATE events SET
			name = $1, category = $2, date = $3, time = $4, location = $5,
			organizer = $6, max_participants = $7, registration_fee = $8,
			contact_info = $9, status = $10, description = $11, image_url = $12
		WHERE id = $13`,
		e.Name, e.Category, e.Date, e.Time, e.Location, e.Organizer,
		e.MaxParticipants, e.RegistrationFee, e.ContactInfo, e.Status,
		e.Description, e.ImageURL, e.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Delete removes the event and its registrations as one atomic unit, so no
// orphaned registration rows can survive a partial failure.
func (r *sqlEventRepo) Delete(id int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM event_registrations WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("delete registrations: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEventNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete tx: %w", err)
	}
	return nil
}

func (r *sqlEventRepo) Statistics() (Statistics, error) {
	var s Statistics
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&s.TotalEvents); err != nil {
		return Statistics{}, err
	}
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM events
		WHERE date >= CURRENT_DATE AND status = 'upcoming'`).Scan(&s.UpcomingEvents); err != nil {
		return Statistics{}, err
	}
	if err := r.db.QueryRow(`SELECT COALESCE(SUM(current_participants), 0)
		FROM events`).Scan(&s.TotalParticipants); err != nil {
		return Statistics{}, err
	}
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM events
		WHERE status = 'completed'`).Scan(&s.CompletedEvents); err != nil {
		return Statistics{}, err
	}
	return s, nil
}
