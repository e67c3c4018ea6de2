package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Replace swaps out the full slot set for a date in one
	// transaction. Last write wins; no merge with existing rows.
	Replace(ctx context.Context, date string, slots []*Slot) error
	ListByDate(ctx context.Context, date string) ([]*Slot, error)
	Exists(ctx context.Context, date string, profile Profile, timeOfDay int) (bool, error)

	// Claim atomically flips is_booked false->true for one slot.
	// Returns ErrSlotUnavailable when the slot is missing or already
	// booked. This conditional update is the only mutual-exclusion
	// point guarding against double-booking.
	Claim(ctx context.Context, date string, profile Profile, timeOfDay int) error

	// Release flips is_booked back to false. A slot that is already
	// free (or gone after a re-publish) is a silent no-op.
	Release(ctx context.Context, date string, profile Profile, timeOfDay int) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Replace(ctx context.Context, date string, slots []*Slot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace slots tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	delQuery, delArgs, err := psql.Delete("public.slots").
		Where(squirrel.Eq{"slot_date": date}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete slots query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, delQuery, delArgs...); err != nil {
		return fmt.Errorf("delete slots failed: %w", err)
	}

	if len(slots) > 0 {
		ins := psql.Insert("public.slots").
			Columns("slot_date", "profile", "time_of_day", "is_booked")
		for _, s := range slots {
			ins = ins.Values(date, s.Profile, s.TimeOfDay, s.IsBooked)
		}
		insQuery, insArgs, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("build insert slots query failed: %w", err)
		}
		if _, err := tx.Exec(ctx, insQuery, insArgs...); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrDuplicateSlot
			}
			return fmt.Errorf("insert slots failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace slots tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListByDate(ctx context.Context, date string) ([]*Slot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("slot_date", "profile", "time_of_day", "is_booked", "updated_at").
		From("public.slots").
		Where(squirrel.Eq{"slot_date": date}).
		OrderBy("profile ASC", "time_of_day ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list slots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slots failed: %w", err)
	}
	defer rows.Close()

	var slots []*Slot
	for rows.Next() {
		var s Slot
		if err := rows.Scan(&s.Date, &s.Profile, &s.TimeOfDay, &s.IsBooked, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan slot failed: %w", err)
		}
		slots = append(slots, &s)
	}

	return slots, nil
}

func (r *pgxRepository) Exists(ctx context.Context, date string, profile Profile, timeOfDay int) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sub, args, err := psql.Select("1").
		From("public.slots").
		Where(squirrel.Eq{"slot_date": date, "profile": profile, "time_of_day": timeOfDay}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build slot exists query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check slot exists failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) Claim(ctx context.Context, date string, profile Profile, timeOfDay int) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.slots").
		Set("is_booked", true).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{
			"slot_date":   date,
			"profile":     profile,
			"time_of_day": timeOfDay,
			"is_booked":   false,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build claim slot query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("claim slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrSlotUnavailable
	}
	return nil
}

func (r *pgxRepository) Release(ctx context.Context, date string, profile Profile, timeOfDay int) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.slots").
		Set("is_booked", false).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{
			"slot_date":   date,
			"profile":     profile,
			"time_of_day": timeOfDay,
			"is_booked":   true,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build release slot query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("release slot failed: %w", err)
	}
	return nil
}
