package queries_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetDriverOrdersQuery_Valid(t *testing.T) {
	driverID := kernel.NewUUID()

	query, err := queries.NewGetDriverOrdersQuery(driverID)
	require.NoError(t, err)

	assert.NoError(t, query.Validate())
	assert.True(t, query.DriverID().IsEqual(driverID))
}

func TestNewGetDriverOrdersQuery_EmptyDriverID(t *testing.T) {
	_, err := queries.NewGetDriverOrdersQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetDriverOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetDriverOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetDriverOrdersQueryIsNotConstructed)
}
