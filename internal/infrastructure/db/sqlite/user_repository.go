package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/zerowaste/connect-share/internal/core/domain"
)

const userColumns = `id, email, name, role, phone, address, lat, lng, password_hash, created_at`

// UserRepository implements ports.UserRepository on SQLite.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var (
		address  sql.NullString
		lat, lng sql.NullFloat64
	)
	if u.Location != nil {
		address = sql.NullString{String: u.Location.Address, Valid: true}
		lat = sql.NullFloat64{Float64: u.Location.Coordinates.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: u.Location.Coordinates.Lng, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `INSERT INTO users (`+userColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?)`,
		u.ID, strings.ToLower(u.Email), u.Name, string(u.Role), u.Phone, address, lat, lng, u.PasswordHash, u.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `email = ?`, strings.ToLower(email))
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, `id = ?`, id)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanUser(s rowScanner) (*domain.User, error) {
	var (
		u        domain.User
		role     string
		address  sql.NullString
		lat, lng sql.NullFloat64
	)
	if err := s.Scan(&u.ID, &u.Email, &u.Name, &role, &u.Phone, &address, &lat, &lng, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	if address.Valid {
		u.Location = &domain.Location{
			Address:     address.String,
			Coordinates: domain.Coordinates{Lat: lat.Float64, Lng: lng.Float64},
		}
	}
	return &u, nil
}
