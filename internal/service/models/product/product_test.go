package product

import (
	"testing"
	"time"

	"github.com/corray333/backoffice/internal/service/models/unit"
	"github.com/stretchr/testify/require"
)

func TestUnitByName_SkipsDisabledAndDeleted(t *testing.T) {
	now := time.Now()
	p := Product{Units: []unit.Unit{
		{Name: "half", Enabled: true},
		{Name: "quarter", Enabled: false},
		{Name: "crate", Enabled: true, DeletedAt: &now},
	}}

	require.NotNil(t, p.UnitByName("half"))
	require.Nil(t, p.UnitByName("quarter"))
	require.Nil(t, p.UnitByName("crate"))
	require.Nil(t, p.UnitByName("slice"))
}

func TestAuditSnapshot_FormatsPrices(t *testing.T) {
	base := int64(750)
	barcode := "4006381333931"
	p := Product{Name: "sourdough", PriceCents: 1200, BasePriceCents: &base, Barcode: &barcode}

	snap := p.AuditSnapshot()
	require.Equal(t, "sourdough", *snap["name"])
	require.Equal(t, "1200", *snap["price"])
	require.Equal(t, "750", *snap["basePrice"])
	require.Equal(t, "4006381333931", *snap["barcode"])
}

func TestAuditSnapshot_NilOptionalFields(t *testing.T) {
	p := Product{Name: "plain", PriceCents: 100}

	snap := p.AuditSnapshot()
	require.Nil(t, snap["basePrice"])
	require.Nil(t, snap["barcode"])
}
