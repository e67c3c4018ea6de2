package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// singletonKey pins the price setting to one row.
const singletonKey = "global"

type Repository interface {
	// Get returns the stored price setting, or the defaults when the
	// row has never been written.
	Get(ctx context.Context) (*PriceSetting, error)
	Update(ctx context.Context, baseAmount float64) (*PriceSetting, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Get(ctx context.Context) (*PriceSetting, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("base_amount", "base_currency", "updated_at").
		From("public.price_settings").
		Where(squirrel.Eq{"key": singletonKey}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get price setting query failed: %w", err)
	}

	var p PriceSetting
	row := r.pool.QueryRow(ctx, query, args...)
	if err := row.Scan(&p.BaseAmount, &p.BaseCurrency, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &PriceSetting{
				BaseAmount:   DefaultBaseAmount,
				BaseCurrency: DefaultBaseCurrency,
				UpdatedAt:    time.Time{},
			}, nil
		}
		return nil, fmt.Errorf("get price setting failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) Update(ctx context.Context, baseAmount float64) (*PriceSetting, error) {
	query := `
		INSERT INTO public.price_settings (key, base_amount, base_currency, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (key) DO UPDATE SET
			base_amount = EXCLUDED.base_amount,
			updated_at = now()
		RETURNING base_amount, base_currency, updated_at`

	var p PriceSetting
	row := r.pool.QueryRow(ctx, query, singletonKey, baseAmount, DefaultBaseCurrency)
	if err := row.Scan(&p.BaseAmount, &p.BaseCurrency, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("update price setting failed: %w", err)
	}
	return &p, nil
}
