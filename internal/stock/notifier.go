package stock

import (
	"context"
	"log/slog"
)

// Notifier receives low-stock signals. Delivery is best effort.
type Notifier interface {
	LowStock(ctx context.Context, level Level)
}

type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) LowStock(ctx context.Context, level Level) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.WarnContext(ctx, "low stock",
		"product_id", level.ProductID,
		"product", level.ProductName,
		"on_hand", level.OnHand,
		"threshold", level.Threshold,
	)
}
