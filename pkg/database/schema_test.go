package database

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Decimal columns are unconstrained so stored amounts keep the parsed scale.
func TestSchema_DecimalColumnsKeepScale(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "migrations", "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	fixedScale := regexp.MustCompile(`(?i)\b(NUMERIC|DECIMAL)\s*\(`)
	for _, f := range files {
		b, err := os.ReadFile(f)
		require.NoError(t, err)
		assert.Falsef(t, fixedScale.Match(b), "%s declares a fixed-scale numeric column", filepath.Base(f))
	}
}
