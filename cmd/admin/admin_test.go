package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatube/backend/post"
	"github.com/yatube/backend/srvcerror"
	"github.com/yatube/backend/user"
)

func setupAdminEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "admin.db"))
}

func runAdmin(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "absent.toml"), "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestGroupCreateAndList(t *testing.T) {
	setupAdminEnv(t)

	_, err := runAdmin(t, "", "group", "create", "--title", "Лев Толстой", "--slug", "tolstoy")
	require.NoError(t, err)
	_, err = runAdmin(t, "", "group", "create", "-t", "Пушкин", "-s", "pushkin", "-d", "Поэты")
	require.NoError(t, err)

	out, err := runAdmin(t, "", "group", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "SLUG")
	assert.Contains(t, lines[1], "tolstoy")
	assert.Contains(t, lines[2], "pushkin")

	_, err = runAdmin(t, "", "group", "create", "--title", "Снова", "--slug", "tolstoy")
	assert.True(t, errors.Is(err, post.ErrGroupSlugExists), "got %v", err)
}

func TestGroupCreateRequiresFlags(t *testing.T) {
	setupAdminEnv(t)
	_, err := runAdmin(t, "", "group", "create", "--title", "Без адреса")
	assert.Error(t, err)
}

func TestUserCreate(t *testing.T) {
	setupAdminEnv(t)

	out, err := runAdmin(t, "", "user", "create",
		"-u", "leo", "-e", "leo@example.com", "-p", "password123", "--firstname", "Лев")
	require.NoError(t, err)
	assert.Contains(t, out, "leo")

	_, err = runAdmin(t, "", "user", "create", "-u", "leo", "-e", "other@example.com", "-p", "password123")
	var srvcErr *srvcerror.Error
	require.True(t, errors.As(err, &srvcErr), "got %v", err)
	assert.Equal(t, user.ErrCodeUsernameAlreadyExists, srvcErr.ErrorCode())
}

func TestPostValidate(t *testing.T) {
	setupAdminEnv(t)

	out, err := runAdmin(t, "Короткий пост", "post", "validate")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	_, err = runAdmin(t, strings.Repeat("б", 129), "post", "validate")
	assert.True(t, errors.Is(err, post.ErrWordTooLong), "got %v", err)

	path := filepath.Join(t.TempDir(), "post.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("a", 2049)), 0o644))
	_, err = runAdmin(t, "", "post", "validate", path)
	assert.True(t, errors.Is(err, post.ErrTextTooLong), "got %v", err)
}

func TestPostValidateUsesConfiguredLimits(t *testing.T) {
	setupAdminEnv(t)
	t.Setenv("POSTS_MAX_WORD_LENGTH", "3")

	_, err := runAdmin(t, "abcd", "post", "validate")
	assert.True(t, errors.Is(err, post.ErrWordTooLong), "got %v", err)
}
