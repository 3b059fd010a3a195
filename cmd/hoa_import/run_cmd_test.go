package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/hoa_billing_app/internal/core/domain"
	"github.com/SscSPs/hoa_billing_app/internal/utils"
)

func TestCollectExports(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "WM02"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "WM01"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "WM02", "lok.txt"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "WM01", "lok.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("x"), 0o644))

	files, err := collectExports(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "README", files[0].Name)
	assert.Equal(t, domain.UploadedFile{Name: "WM01/lok.txt", Content: []byte("a")}, files[1])
	assert.Equal(t, "WM02/lok.txt", files[2].Name)
}

func TestCollectExports_MissingDir(t *testing.T) {
	_, err := collectExports(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestRunRequiresDir(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"run"})
	cmd.SetOut(&bytes.Buffer{})
	assert.EqualError(t, cmd.Execute(), "--dir is required")
}

func TestPrintResult(t *testing.T) {
	cmd := newRunCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, printResult(cmd, domain.BatchImportResult{Success: true, Results: []domain.HOAImportResult{}, Errors: []domain.ImportError{}}))
	assert.JSONEq(t, `{"success":true,"cleanImport":false,"results":[],"errors":[]}`, out.String())
}

func TestTokenCmd(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"token"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "x-api-key: ")
	assert.Contains(t, out.String(), "IMPORT_API_TOKEN_HASH=$2a$")
}

func TestJWTCmd(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"jwt", "--subject", "admin", "--ttl", "5m"})

	require.NoError(t, cmd.Execute())
	claims, err := utils.ParseAndValidateJWT(strings.TrimSpace(out.String()), "cli-secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
}
