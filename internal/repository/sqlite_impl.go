package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alexivanou/tripsynth-api/internal/model"
	"github.com/jmoiron/sqlx"
)

type sqliteTripRepository struct {
	db  *sqlx.DB
	now clock
}

func (r *sqliteTripRepository) Create(ctx context.Context, trip *model.Trip) (*model.Trip, error) {
	t := *trip
	t.CreatedAt = r.now()
	t.UpdatedAt = t.CreatedAt

	res, err := r.db.NamedExecContext(ctx, `
		INSERT INTO trips (owner_id, is_saved, display_name, destination, country_name, duration_days,
			traveler_group, interests, budget_tier, transport_preference, plan_payload, created_at, updated_at)
		VALUES (:owner_id, :is_saved, :display_name, :destination, :country_name, :duration_days,
			:traveler_group, :interests, :budget_tier, :transport_preference, :plan_payload, :created_at, :updated_at)`,
		&t)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	t.ID = id
	return &t, nil
}

func (r *sqliteTripRepository) Promote(ctx context.Context, tripID, ownerID int64, displayName string) (*model.Trip, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE trips SET is_saved = 1, display_name = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`,
		displayName, r.now(), tripID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return r.Get(ctx, tripID, ownerID)
}

func (r *sqliteTripRepository) List(ctx context.Context, ownerID int64, isSaved *bool, page model.Page) ([]model.Trip, error) {
	page = page.Normalize()

	q := "SELECT * FROM trips WHERE owner_id = ?"
	args := []interface{}{ownerID}
	if isSaved != nil {
		q += " AND is_saved = ?"
		args = append(args, *isSaved)
	}
	q += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, page.Limit, page.Offset)

	trips := []model.Trip{}
	if err := r.db.SelectContext(ctx, &trips, q, args...); err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *sqliteTripRepository) Get(ctx context.Context, tripID, ownerID int64) (*model.Trip, error) {
	var trip model.Trip
	if err := r.db.GetContext(ctx, &trip, "SELECT * FROM trips WHERE id = ? AND owner_id = ?", tripID, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &trip, nil
}

func (r *sqliteTripRepository) Delete(ctx context.Context, tripID, ownerID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ? AND owner_id = ?", tripID, ownerID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type sqliteOwnerRepository struct {
	db  *sqlx.DB
	now clock
}

func (r *sqliteOwnerRepository) Ensure(ctx context.Context, ownerID int64) error {
	_, err := r.db.ExecContext(ctx, "INSERT OR IGNORE INTO owners (id, created_at) VALUES (?, ?)", ownerID, r.now())
	return err
}

func (r *sqliteOwnerRepository) Delete(ctx context.Context, ownerID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM owners WHERE id = ?", ownerID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
