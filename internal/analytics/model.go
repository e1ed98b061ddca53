package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary covers household spending over a period.
type Summary struct {
	TotalReceipts  int             `json:"total_receipts"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	TotalItems     int             `json:"total_items"`
	AverageReceipt decimal.Decimal `json:"average_receipt"`
	PeriodDays     int             `json:"period_days"`
	PeriodStart    time.Time       `json:"period_start"`
	Currency       string          `json:"currency"`
}

// CategorySpending is one slice of the by-category breakdown.
type CategorySpending struct {
	Category   string          `json:"category"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	ItemCount  int             `json:"item_count"`
}
