package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func writeAdmins(t *testing.T, content string) string {
	t.Helper()

	name := filepath.Join(t.TempDir(), "admins.yml")
	require.NoError(t, os.WriteFile(name, []byte(content), 0o600))

	return name
}

func TestCheckAuthPlain(t *testing.T) {
	r := NewFileAdminRepo(writeAdmins(t, "---\n- login: adm\n  password: secret\n"))

	require.False(t, r.IsEmpty())
	require.True(t, r.CheckAuth("adm", "secret"))
	require.False(t, r.CheckAuth("adm", "wrong"))
	require.False(t, r.CheckAuth("nobody", "secret"))
}

func TestCheckAuthHash(t *testing.T) {
	h, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	r := NewFileAdminRepo(writeAdmins(t, fmt.Sprintf("---\n- login: adm\n  password: %q\n", string(h))))

	require.True(t, r.CheckAuth("adm", "secret"))
	require.False(t, r.CheckAuth("adm", "wrong"))
}

func TestDisabled(t *testing.T) {
	r := NewFileAdminRepo(writeAdmins(t, "---\n- login: adm\n  password: secret\n  disabled: true\n"))

	require.False(t, r.CheckAuth("adm", "secret"))
}

func TestMissingFileCreated(t *testing.T) {
	name := filepath.Join(t.TempDir(), "admins.yml")

	r := NewFileAdminRepo(name)
	require.True(t, r.IsEmpty())

	_, err := os.Stat(name)
	require.NoError(t, err)
}
