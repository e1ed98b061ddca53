package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Summary(ctx context.Context, householdID uuid.UUID, since time.Time) (*Summary, error)
	ByCategory(ctx context.Context, householdID uuid.UUID, since time.Time) ([]CategorySpending, error)
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Summary(
	ctx context.Context,
	householdID uuid.UUID,
	since time.Time,
) (*Summary, error) {
	var s Summary
	s.Currency = "NOK"

	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM receipts
		WHERE household_id = $1
		  AND status = 'PARSED'
		  AND purchase_date >= $2
	`, householdID, since).Scan(&s.TotalReceipts, &s.TotalSpent)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM receipt_items ri
		JOIN receipts r ON r.id = ri.receipt_id
		WHERE r.household_id = $1
		  AND r.purchase_date >= $2
		  AND NOT ri.is_pant
		  AND ri.discount_amount = 0
	`, householdID, since).Scan(&s.TotalItems)
	if err != nil {
		return nil, err
	}

	if s.TotalReceipts > 0 {
		s.AverageReceipt = s.TotalSpent.
			Div(decimal.NewFromInt(int64(s.TotalReceipts))).
			Round(2)
	}

	return &s, nil
}

func (r *PostgresRepository) ByCategory(
	ctx context.Context,
	householdID uuid.UUID,
	since time.Time,
) ([]CategorySpending, error) {
	rows, err := r.db.Query(ctx, `
		SELECT COALESCE(c.name, 'Uncategorized'),
		       COALESCE(SUM(ri.total_price), 0),
		       COUNT(*)
		FROM receipt_items ri
		JOIN receipts r ON r.id = ri.receipt_id
		LEFT JOIN ingredients i ON i.id = ri.ingredient_id
		LEFT JOIN categories c ON c.id = i.category_id
		WHERE r.household_id = $1
		  AND r.purchase_date >= $2
		  AND NOT ri.is_pant
		  AND ri.discount_amount = 0
		GROUP BY COALESCE(c.name, 'Uncategorized')
		ORDER BY COALESCE(SUM(ri.total_price), 0) DESC
	`, householdID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	breakdown := []CategorySpending{}
	for rows.Next() {
		var cs CategorySpending
		if err := rows.Scan(&cs.Category, &cs.TotalSpent, &cs.ItemCount); err != nil {
			return nil, err
		}
		breakdown = append(breakdown, cs)
	}
	return breakdown, rows.Err()
}
