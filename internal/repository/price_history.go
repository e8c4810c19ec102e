package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalogscraper/internal/model"
)

// PriceHistory appends one pricing sample per product per cycle. With the
// scraper running every few minutes this table is what turns the daily files
// into a usable price track.
type PriceHistory struct {
	DB *pgxpool.Pool
}

func (r *PriceHistory) Record(ctx context.Context, p model.Product) error {
	if p.Pricing == nil {
		return nil
	}

	_, err := r.DB.Exec(ctx, `
		INSERT INTO product_price_history
		(id, product_id, monthly_rental, strike_price, discount, discount_percentage, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, uuid.New(), p.ID,
		p.Pricing.MonthlyRental.Value,
		p.Pricing.StrikePrice.Value,
		p.Pricing.Discount.Value,
		p.Pricing.DiscountPercentage.Value,
		time.Now().UTC())

	return err
}
