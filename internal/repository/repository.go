package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexivanou/tripsynth-api/internal/config"
	"github.com/alexivanou/tripsynth-api/internal/model"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a row does not exist or belongs to another owner
var ErrNotFound = errors.New("not found")

// TripRepository defines owner-scoped operations for trips
type TripRepository interface {
	Create(ctx context.Context, trip *model.Trip) (*model.Trip, error)
	Promote(ctx context.Context, tripID, ownerID int64, displayName string) (*model.Trip, error)
	List(ctx context.Context, ownerID int64, isSaved *bool, page model.Page) ([]model.Trip, error)
	Get(ctx context.Context, tripID, ownerID int64) (*model.Trip, error)
	Delete(ctx context.Context, tripID, ownerID int64) error
}

// OwnerRepository defines operations for trip owners
type OwnerRepository interface {
	Ensure(ctx context.Context, ownerID int64) error
	Delete(ctx context.Context, ownerID int64) error
}

// Container holds all repositories
type Container struct {
	Trip  TripRepository
	Owner OwnerRepository
}

// clock returns the current time truncated to what both databases store
type clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// NewRepositories creates repository implementations based on DB type
func NewRepositories(db *sqlx.DB, dbType config.DBType) *Container {
	return newRepositories(db, dbType, systemClock)
}

func newRepositories(db *sqlx.DB, dbType config.DBType, now clock) *Container {
	if dbType == config.DBTypePostgreSQL {
		return &Container{
			Trip:  &pgTripRepository{db: db, now: now},
			Owner: &pgOwnerRepository{db: db, now: now},
		}
	}

	// Default to SQLite
	return &Container{
		Trip:  &sqliteTripRepository{db: db, now: now},
		Owner: &sqliteOwnerRepository{db: db, now: now},
	}
}

// CountTrips returns how many trips are stored across all owners
func CountTrips(ctx context.Context, db *sqlx.DB) (int, error) {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM trips"); err != nil {
		return 0, err
	}
	return count, nil
}
