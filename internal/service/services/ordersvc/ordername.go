package ordersvc

import (
	"context"
	"fmt"
	"time"
)

// monthPrefix renders the YYMM order-name prefix for the given time.
func monthPrefix(t time.Time) string {
	return t.Format("0601")
}

func formatOrderName(prefix string, seq int64) string {
	return fmt.Sprintf("%s%08d", prefix, seq)
}

// nextOrderName allocates the next order name for the current month. The
// counter row increment locks the row, so concurrent creations serialize
// here until their transactions end; a number is never handed out twice.
func (s *OrderService) nextOrderName(ctx context.Context, work unitOfWork, now time.Time) (string, error) {
	prefix := monthPrefix(now)
	seq, err := work.OrderNumbers().Next(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("allocate order number: %w", err)
	}

	return formatOrderName(prefix, seq), nil
}
