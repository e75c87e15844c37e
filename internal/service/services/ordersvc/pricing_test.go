package ordersvc

import (
	"testing"

	"github.com/corray333/backoffice/internal/service/models/product"
	"github.com/corray333/backoffice/internal/service/models/unit"
	"github.com/stretchr/testify/require"
)

func TestResolvePrice(t *testing.T) {
	p := &product.Product{PriceCents: 1000}
	u := &unit.Unit{PriceCents: 600}
	override := int64(1500)

	tests := []struct {
		name          string
		unit          *unit.Unit
		override      *int64
		allowOverride bool
		want          int64
	}{
		{"product price by default", nil, nil, false, 1000},
		{"unit price beats product price", u, nil, false, 600},
		{"override wins when allowed", u, &override, true, 1500},
		{"override ignored when not allowed", u, &override, false, 600},
		{"override ignored without unit", nil, &override, false, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, resolvePrice(p, tt.unit, tt.override, tt.allowOverride))
		})
	}
}
