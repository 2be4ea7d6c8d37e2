package migrate

import (
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/require"

	migrationsFS "github.com/Miraines/MoonyAndStarry/library-service/scripts/db/migrations"
)

func TestEmbeddedMigrations_Ordered(t *testing.T) {
	src, err := iofs.New(migrationsFS.FS, ".")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	require.Equal(t, uint(1), first)

	next, err := src.Next(first)
	require.NoError(t, err)
	require.Equal(t, uint(2), next)

	_, err = src.Next(next)
	require.Error(t, err, "only schema and seed migrations are expected")
}
