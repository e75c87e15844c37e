package ordersvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestMonthPrefix(t *testing.T) {
	require.Equal(t, "2603", monthPrefix(time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)))
	require.Equal(t, "2612", monthPrefix(time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFormatOrderName(t *testing.T) {
	require.Equal(t, "260300000007", formatOrderName("2603", 7))
	require.Equal(t, "260300123456", formatOrderName("2603", 123456))
}

func TestConcurrentOrderNamesAreDistinct(t *testing.T) {
	s := newStore()
	svc := newTestService(s)
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	const n = 50
	names := make([]string, n)

	g, ctx := errgroup.WithContext(t.Context())
	for i := 0; i < n; i++ {
		g.Go(func() error {
			name, err := svc.nextOrderName(ctx, svc.newUOW(), now)
			if err != nil {
				return err
			}
			names[i] = name
			return nil
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[string]struct{}, n)
	for _, name := range names {
		require.NotContains(t, seen, name)
		seen[name] = struct{}{}
	}
	require.Len(t, seen, n)
}

func TestMonthPrefixChangeResetsCounter(t *testing.T) {
	s := newStore()
	repo := &fakeOrderNumRepo{s}

	march, err := repo.Next(t.Context(), "2603")
	require.NoError(t, err)
	require.Equal(t, int64(1), march)

	march, err = repo.Next(t.Context(), "2603")
	require.NoError(t, err)
	require.Equal(t, int64(2), march)

	april, err := repo.Next(t.Context(), "2604")
	require.NoError(t, err)
	require.Equal(t, int64(1), april)
}
