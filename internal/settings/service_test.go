package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	stored *PriceSetting
}

func (r *fakeRepository) Get(context.Context) (*PriceSetting, error) {
	if r.stored == nil {
		return &PriceSetting{
			BaseAmount:   DefaultBaseAmount,
			BaseCurrency: DefaultBaseCurrency,
		}, nil
	}
	return r.stored, nil
}

func (r *fakeRepository) Update(_ context.Context, baseAmount float64) (*PriceSetting, error) {
	r.stored = &PriceSetting{
		BaseAmount:   baseAmount,
		BaseCurrency: DefaultBaseCurrency,
		UpdatedAt:    time.Now(),
	}
	return r.stored, nil
}

func TestGetReturnsDefaultsWhenUnset(t *testing.T) {
	svc := NewService(&fakeRepository{})

	p, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseAmount, p.BaseAmount)
	assert.Equal(t, DefaultBaseCurrency, p.BaseCurrency)
}

func TestUpdateRejectsNonPositiveAmount(t *testing.T) {
	svc := NewService(&fakeRepository{})

	_, err := svc.Update(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Update(context.Background(), -10)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestUpdatePersists(t *testing.T) {
	svc := NewService(&fakeRepository{})
	ctx := context.Background()

	p, err := svc.Update(ctx, 750)
	require.NoError(t, err)
	assert.Equal(t, 750.0, p.BaseAmount)

	p, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 750.0, p.BaseAmount)
	assert.Equal(t, DefaultBaseCurrency, p.BaseCurrency)
}
