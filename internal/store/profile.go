package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dukerupert/familytree/internal/model"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrProfileExists is returned when a profile for the external user ID
// already exists.
var ErrProfileExists = errors.New("profile already exists")

type ProfileStore struct {
	db *sql.DB
}

func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

func scanProfile(scanner interface{ Scan(...any) error }) (*model.Profile, error) {
	var p model.Profile
	err := scanner.Scan(&p.ID, &p.Email, &p.FirstName, &p.LastName, &p.DisplayName,
		&p.ExternalUserID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const profileCols = `id, email, first_name, last_name, display_name, external_user_id, created_at, updated_at`

// Create inserts a profile. The display name is first + " " + last.
func (s *ProfileStore) Create(email, firstName, lastName, externalUserID string) (*model.Profile, error) {
	displayName := firstName + " " + lastName
	result, err := s.db.Exec(
		`INSERT INTO profiles (email, first_name, last_name, display_name, external_user_id) VALUES (?, ?, ?, ?, ?)`,
		email, firstName, lastName, displayName, externalUserID,
	)
	if isUniqueViolation(err) {
		return nil, ErrProfileExists
	}
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ProfileStore) GetByID(id int64) (*model.Profile, error) {
	row := s.db.QueryRow(`SELECT `+profileCols+` FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) GetByExternalID(externalUserID string) (*model.Profile, error) {
	row := s.db.QueryRow(`SELECT `+profileCols+` FROM profiles WHERE external_user_id = ?`, externalUserID)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile by external id: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) List() ([]model.Profile, error) {
	rows, err := s.db.Query(`SELECT ` + profileCols + ` FROM profiles ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
