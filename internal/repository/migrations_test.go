package repository_test

import (
	"github.com/nikolayk812/sqlcpp-shop/internal/migrations"
	"github.com/stretchr/testify/require"
)

func (suite *repositorySuite) TestMigrationsApplyIsIdempotent() {
	t := suite.T()

	// the container already ran the script as an init script
	require.NoError(t, migrations.Apply(t.Context(), suite.pool))
	require.NoError(t, migrations.Apply(t.Context(), suite.pool))
}
