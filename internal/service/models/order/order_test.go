package order

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("PENDING")
	require.NoError(t, err)
	require.Equal(t, StatusPending, status)

	status, err = ParseStatus("DONE")
	require.NoError(t, err)
	require.Equal(t, StatusDone, status)

	_, err = ParseStatus("SHIPPED")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAuditSnapshot_CoversAuditedFields(t *testing.T) {
	address := "12 Main St"
	o := Order{Status: StatusPending, Address: &address}

	snap := o.AuditSnapshot()
	require.Equal(t, string(StatusPending), *snap["status"])
	require.Equal(t, address, *snap["address"])
	require.Nil(t, snap["phone"])
	require.Nil(t, snap["email"])
	require.Nil(t, snap["customerName"])
}
