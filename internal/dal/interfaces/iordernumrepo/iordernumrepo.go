package iordernumrepo

import "context"

// Repository allocates sequential order numbers. Next increments and
// returns the counter for the given month prefix; the row lock taken by the
// increment serializes concurrent callers until their transaction ends.
type Repository interface {
	Next(ctx context.Context, prefix string) (int64, error)
}
