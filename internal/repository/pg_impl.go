package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexivanou/tripsynth-api/internal/model"
	"github.com/jmoiron/sqlx"
)

// --- PostgreSQL Implementation ---

type pgTripRepository struct {
	db  *sqlx.DB
	now clock
}

func (r *pgTripRepository) Create(ctx context.Context, trip *model.Trip) (*model.Trip, error) {
	t := *trip
	t.CreatedAt = r.now()
	t.UpdatedAt = t.CreatedAt

	stmt, err := r.db.PrepareNamedContext(ctx, `
		INSERT INTO trips (owner_id, is_saved, display_name, destination, country_name, duration_days,
			traveler_group, interests, budget_tier, transport_preference, plan_payload, created_at, updated_at)
		VALUES (:owner_id, :is_saved, :display_name, :destination, :country_name, :duration_days,
			:traveler_group, :interests, :budget_tier, :transport_preference, :plan_payload, :created_at, :updated_at)
		RETURNING id`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	if err := stmt.GetContext(ctx, &t.ID, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *pgTripRepository) Promote(ctx context.Context, tripID, ownerID int64, displayName string) (*model.Trip, error) {
	var trip model.Trip
	err := r.db.GetContext(ctx, &trip, `
		UPDATE trips SET is_saved = TRUE, display_name = $1, updated_at = $2
		WHERE id = $3 AND owner_id = $4
		RETURNING *`,
		displayName, r.now(), tripID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &trip, nil
}

func (r *pgTripRepository) List(ctx context.Context, ownerID int64, isSaved *bool, page model.Page) ([]model.Trip, error) {
	page = page.Normalize()

	q := "SELECT * FROM trips WHERE owner_id = $1"
	args := []interface{}{ownerID}
	if isSaved != nil {
		args = append(args, *isSaved)
		q += fmt.Sprintf(" AND is_saved = $%d", len(args))
	}
	q += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, page.Limit, page.Offset)

	trips := []model.Trip{}
	if err := r.db.SelectContext(ctx, &trips, q, args...); err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *pgTripRepository) Get(ctx context.Context, tripID, ownerID int64) (*model.Trip, error) {
	var trip model.Trip
	if err := r.db.GetContext(ctx, &trip, "SELECT * FROM trips WHERE id = $1 AND owner_id = $2", tripID, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &trip, nil
}

func (r *pgTripRepository) Delete(ctx context.Context, tripID, ownerID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM trips WHERE id = $1 AND owner_id = $2", tripID, ownerID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type pgOwnerRepository struct {
	db  *sqlx.DB
	now clock
}

func (r *pgOwnerRepository) Ensure(ctx context.Context, ownerID int64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO owners (id, created_at) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING",
		ownerID, r.now())
	return err
}

func (r *pgOwnerRepository) Delete(ctx context.Context, ownerID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM owners WHERE id = $1", ownerID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
