// Package db owns schema bootstrap for the Postgres store. The *sql.DB
// handle is created by the composition root and passed in; nothing here is
// package-level state.
package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"charityevents/models"
)

// Open connects to Postgres and sizes the connection pool.
func Open(dsn string) (*sql.DB, error) {
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := sqldb.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	sqldb.SetMaxOpenConns(20)
	sqldb.SetMaxIdleConns(10)
	return sqldb, nil
}

// CreateTables sets up the schema. The CHECK constraints are backstops for
// invariants the registration transaction already enforces.
func CreateTables(sqldb *sql.DB) error {
	createAdminsTable := `
	CREATE TABLE IF NOT EXISTS admins (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	);`
	if _, err := sqldb.Exec(createAdminsTable); err != nil {
		return fmt.Errorf("create admins table: %w", err)
	}

	createEventsTable := `
	CREATE TABLE IF NOT EXISTS events (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		date DATE NOT NULL,
		time TIME,
		location TEXT NOT NULL,
		organizer TEXT,
		max_participants INTEGER,
		current_participants INTEGER NOT NULL DEFAULT 0,
		registration_fee NUMERIC(10,2) NOT NULL DEFAULT 0,
		contact_info TEXT,
		status TEXT NOT NULL DEFAULT 'upcoming',
		description TEXT,
		image_url TEXT,
		CHECK (current_participants >= 0),
		CHECK (max_participants IS NULL OR current_participants <= max_participants),
		CHECK (registration_fee >= 0),
		CHECK (status IN ('upcoming', 'ongoing', 'completed', 'cancelled'))
	);`
	if _, err := sqldb.Exec(createEventsTable); err != nil {
		return fmt.Errorf("create events table: %w", err)
	}

	createRegistrationsTable := `
	CREATE TABLE IF NOT EXISTS event_registrations (
		id BIGSERIAL PRIMARY KEY,
		event_id BIGINT NOT NULL REFERENCES events(id),
		participant_name TEXT NOT NULL,
		participant_phone TEXT NOT NULL,
		participant_email TEXT NOT NULL DEFAULT '',
		participant_age TEXT NOT NULL DEFAULT '',
		volunteer_experience TEXT NOT NULL DEFAULT '',
		motivation TEXT NOT NULL DEFAULT '',
		allow_contact BOOLEAN NOT NULL DEFAULT FALSE,
		ticket_quantity INTEGER NOT NULL CHECK (ticket_quantity BETWEEN 1 AND 10),
		registration_date TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (event_id, participant_phone)
	);`
	if _, err := sqldb.Exec(createRegistrationsTable); err != nil {
		return fmt.Errorf("create event_registrations table: %w", err)
	}

	return nil
}

// SeedAdmin ensures the configured back-office account exists. Existing
// accounts are left untouched.
func SeedAdmin(admins models.AdminRepository, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	if _, err := admins.ValidateCredentials(email, password); err == nil {
		return nil
	}
	err := admins.Create(&models.Admin{Email: email, Password: password})
	if err != nil && isUniqueViolation(err) {
		// Account exists with a different password; keep it.
		return nil
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
