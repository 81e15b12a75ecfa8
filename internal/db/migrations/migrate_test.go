package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/require"
)

func TestDriverURL(t *testing.T) {
	require.Equal(t, "pgx5://u:p@db:5432/kitabghor", DriverURL("postgres://u:p@db:5432/kitabghor"))
	require.Equal(t, "pgx5://db/kitabghor?sslmode=disable", DriverURL("postgresql://db/kitabghor?sslmode=disable"))
	require.Equal(t, "pgx5://db/kitabghor", DriverURL("pgx5://db/kitabghor"))
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(FS, ".")
	require.NoError(t, err)

	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	require.Equal(t, 4, ups)
	require.Equal(t, ups, downs)
}

func TestEmbeddedSourceVersions(t *testing.T) {
	src, err := iofs.New(FS, ".")
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	first, err := src.First()
	require.NoError(t, err)
	require.Equal(t, uint(1), first)

	next, err := src.Next(first)
	require.NoError(t, err)
	require.Equal(t, uint(2), next)
}
