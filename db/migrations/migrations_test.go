package migrations

import (
	"io/fs"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

// Les colonnes décimales à échelle fixe arrondiraient les float64 du service.
func TestSchema_NoScaledNumericColumns(t *testing.T) {
	scaled := regexp.MustCompile(`(?i)\b(NUMERIC|DECIMAL)\s*\(`)
	money := regexp.MustCompile(`(?m)^\s+(montant\w*|prix\w*|qte)\s+DOUBLE PRECISION\b`)

	names, err := fs.Glob(files, "sql/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	found := 0
	for _, name := range names {
		body, err := files.ReadFile(name)
		require.NoError(t, err)
		require.False(t, scaled.Match(body), "%s declares a scaled numeric column", name)
		found += len(money.FindAll(body, -1))
	}
	// tous les montants, prix et quantités décimales du schéma
	require.Equal(t, 12, found)
}
