package postgresrepo

import (
	"testing"

	"github.com/corray333/backoffice/internal/service/models/orderitem"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUnitNamesByID(t *testing.T) {
	kg := uuid.New()
	box := uuid.New()

	names := unitNamesByID([]orderitem.OrderItem{
		{UnitID: &kg, UnitName: strPtr("kg")},
		{UnitID: &box, UnitName: strPtr("box")},
		{},
	})

	require.Equal(t, map[uuid.UUID]string{kg: "kg", box: "box"}, names)
}
