package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quickconvert/entitlement-system/internal/core/domain"
)

const collectionLicenses = "licenses"

// LicenseRepository stores a single authoritative document per license key.
// Email and passthrough are indexed fields on that document, so look-ups by
// any identifier resolve to the same record and can never diverge.
type LicenseRepository struct {
	col *mongo.Collection
}

func NewLicenseRepository(db *mongo.Database) *LicenseRepository {
	return &LicenseRepository{col: db.Collection(collectionLicenses)}
}

// Upsert replaces the document keyed by license key, inserting it when absent.
func (r *LicenseRepository) Upsert(ctx context.Context, license *domain.License) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"license_key": license.LicenseKey}
	_, err := r.col.ReplaceOne(ctx, filter, license, options.Replace().SetUpsert(true))
	return err
}

func (r *LicenseRepository) FindByKey(ctx context.Context, licenseKey string) (*domain.License, error) {
	return r.findOne(ctx, bson.M{"license_key": licenseKey})
}

func (r *LicenseRepository) FindByEmail(ctx context.Context, email string) (*domain.License, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *LicenseRepository) FindByPassthrough(ctx context.Context, passthrough string) (*domain.License, error) {
	return r.findOne(ctx, bson.M{"passthrough": passthrough})
}

func (r *LicenseRepository) findOne(ctx context.Context, filter bson.M) (*domain.License, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var l domain.License
	err := r.col.FindOne(ctx, filter).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLicenseNotFound
		}
		return nil, err
	}
	return &l, nil
}

// EnsureIndexes creates necessary indexes on the licenses collection.
func (r *LicenseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "license_key", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetSparse(true)},
		{Keys: bson.D{{Key: "passthrough", Value: 1}}, Options: options.Index().SetSparse(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
