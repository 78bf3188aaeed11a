package models

import (
	"database/sql"
	"errors"

	"charityevents/utils"
)

type sqlAdminRepo struct{ db *sql.DB }

func NewSQLAdminRepository(db *sql.DB) AdminRepository { return &sqlAdminRepo{db} }

func (r *sqlAdminRepo) Create(a *Admin) error {
	hashed, err := utils.HashPassword(a.Password)
	if err != nil {
		return err
	}
	a.Password = hashed

	return r.db.QueryRow(`INSERT INTO admins(email, password) VALUES ($1, $2) RETURNING id`,
		a.Email, a.Password).Scan(&a.ID)
}

func (r *sqlAdminRepo) ValidateCredentials(email, plain string) (Admin, error) {
	var a Admin
	err := r.db.QueryRow(`SELECT id, email, password FROM admins WHERE email = $1`, email).
		Scan(&a.ID, &a.Email, &a.Password)
	if err != nil {
		return Admin{}, errors.New("invalid credentials")
	}

	if !utils.CheckPasswordHash(plain, a.Password) {
		return Admin{}, errors.New("invalid credentials")
	}

	return a, nil
}
