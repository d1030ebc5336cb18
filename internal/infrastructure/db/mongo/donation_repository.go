package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zerowaste/connect-share/internal/core/domain"
	"github.com/zerowaste/connect-share/internal/core/ports"
)

const collectionDonations = "donations"

type DonationRepository struct {
	col *mongo.Collection
}

func NewDonationRepository(db *mongo.Database) *DonationRepository {
	return &DonationRepository{col: db.Collection(collectionDonations)}
}

// Create inserts a new donation document.
func (r *DonationRepository) Create(ctx context.Context, d *domain.Donation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, d); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateDonation
		}
		return fmt.Errorf("insert donation: %w", err)
	}
	return nil
}

func (r *DonationRepository) FindByID(ctx context.Context, id string) (*domain.Donation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.Donation
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, fmt.Errorf("find donation: %w", err)
	}
	return &d, nil
}

// List returns donations filtered by donor and/or claimant, newest first.
func (r *DonationRepository) List(ctx context.Context, f ports.DonationFilter) ([]*domain.Donation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.DonorID != "" {
		filter["donor_id"] = f.DonorID
	}
	if f.ClaimantID != "" {
		filter["claimed_by"] = f.ClaimantID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]*domain.Donation, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode donations: %w", err)
	}
	return out, nil
}

// CompareAndSwap replaces the document only while its stored status is still
// expected. The status predicate in the filter makes the write atomic.
func (r *DonationRepository) CompareAndSwap(ctx context.Context, id string, expected domain.DonationStatus, next *domain.Donation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": id, "status": string(expected)}, next)
	if err != nil {
		return fmt.Errorf("replace donation: %w", err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("count donation: %w", err)
	}
	if n == 0 {
		return domain.ErrDonationNotFound
	}
	return domain.ErrInvalidTransition
}

// EnsureIndexes creates the indexes the list filters rely on.
func (r *DonationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "donor_id", Value: 1}}},
		{Keys: bson.D{{Key: "claimed_by", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
