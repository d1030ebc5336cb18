package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zerowaste/connect-share/internal/core/domain"
	"github.com/zerowaste/connect-share/internal/core/ports"
)

const queryTimeout = 3 * time.Second

const donationColumns = `id, donor_id, donor_name, title, description, quantity, address, lat, lng,
	image_url, status, created_at, expiry_time, claimed_by, volunteer_name, claimed_at, delivered_at`

// DonationRepository implements ports.DonationRepository on SQLite.
type DonationRepository struct {
	db *sql.DB
}

func NewDonationRepository(db *sql.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

func (r *DonationRepository) Create(ctx context.Context, d *domain.Donation) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `INSERT INTO donations (`+donationColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		d.ID, d.DonorID, d.DonorName, d.Title, d.Description, d.Quantity,
		d.Location.Address, d.Location.Coordinates.Lat, d.Location.Coordinates.Lng,
		d.ImageURL, string(d.Status), d.CreatedAt.UTC(), d.ExpiryTime.UTC(),
		nullString(d.ClaimedBy), nullString(d.VolunteerName), nullTime(d.ClaimedAt), nullTime(d.DeliveredAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateDonation
		}
		return fmt.Errorf("insert donation: %w", err)
	}
	return nil
}

func (r *DonationRepository) FindByID(ctx context.Context, id string) (*domain.Donation, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+donationColumns+` FROM donations WHERE id = ?`, id)
	d, err := scanDonation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, fmt.Errorf("find donation: %w", err)
	}
	return d, nil
}

func (r *DonationRepository) List(ctx context.Context, f ports.DonationFilter) ([]*domain.Donation, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var (
		where []string
		args  []any
	)
	if f.DonorID != "" {
		where = append(where, "donor_id = ?")
		args = append(args, f.DonorID)
	}
	if f.ClaimantID != "" {
		where = append(where, "claimed_by = ?")
		args = append(args, f.ClaimantID)
	}
	q := `SELECT ` + donationColumns + ` FROM donations`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC, id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Donation, 0)
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CompareAndSwap writes next only while the row still holds expected status.
func (r *DonationRepository) CompareAndSwap(ctx context.Context, id string, expected domain.DonationStatus, next *domain.Donation) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE donations
		SET status = ?, claimed_by = ?, volunteer_name = ?, claimed_at = ?, delivered_at = ?
		WHERE id = ? AND status = ?`,
		string(next.Status), nullString(next.ClaimedBy), nullString(next.VolunteerName),
		nullTime(next.ClaimedAt), nullTime(next.DeliveredAt),
		id, string(expected),
	)
	if err != nil {
		return fmt.Errorf("update donation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	var exists int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM donations WHERE id = ?`, id).Scan(&exists); err != nil {
		return fmt.Errorf("count donation: %w", err)
	}
	if exists == 0 {
		return domain.ErrDonationNotFound
	}
	return domain.ErrInvalidTransition
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDonation(s rowScanner) (*domain.Donation, error) {
	var (
		d                      domain.Donation
		status                 string
		claimedBy, volunteer   sql.NullString
		claimedAt, deliveredAt sql.NullTime
	)
	err := s.Scan(&d.ID, &d.DonorID, &d.DonorName, &d.Title, &d.Description, &d.Quantity,
		&d.Location.Address, &d.Location.Coordinates.Lat, &d.Location.Coordinates.Lng,
		&d.ImageURL, &status, &d.CreatedAt, &d.ExpiryTime,
		&claimedBy, &volunteer, &claimedAt, &deliveredAt)
	if err != nil {
		return nil, err
	}
	d.Status = domain.DonationStatus(status)
	d.ClaimedBy = claimedBy.String
	d.VolunteerName = volunteer.String
	if claimedAt.Valid {
		t := claimedAt.Time.UTC()
		d.ClaimedAt = &t
	}
	if deliveredAt.Valid {
		t := deliveredAt.Time.UTC()
		d.DeliveredAt = &t
	}
	d.CreatedAt = d.CreatedAt.UTC()
	d.ExpiryTime = d.ExpiryTime.UTC()
	return &d, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
