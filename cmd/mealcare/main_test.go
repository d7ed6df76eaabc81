package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealcare/internal/schema"
	dErrors "mealcare/pkg/domain-errors"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSchemaPrint(t *testing.T) {
	out, err := execute(t, "", "schema", "print")
	require.NoError(t, err)
	assert.Equal(t, schema.DDL(), out)
}

func TestUnknownLogFormatFailsBeforeRunning(t *testing.T) {
	t.Setenv("MEALCARE_LOG_FORMAT", "xml")
	_, err := execute(t, "", "schema", "print")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported log format")
}

func TestCommandsNeedingADatabaseRejectAnEmptyURL(t *testing.T) {
	t.Setenv("MEALCARE_DATABASE_URL", "")
	_, err := execute(t, "", "tenant", "create", "--name", "Oakview", "--slug", "oakview")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database url is required")
}

func TestInvalidActorIsRejected(t *testing.T) {
	_, err := execute(t, "", "--as-user", "not-a-uuid", "tenant", "create", "--name", "Oakview", "--slug", "oakview")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestUserCreateRequiresPasswordOnStdin(t *testing.T) {
	_, err := execute(t, "", "user", "create", "--email", "maria@oakview.example", "--role", "super_admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}

func TestUserCreateRejectsUnknownRole(t *testing.T) {
	_, err := execute(t, "secret-password\n", "user", "create", "--email", "maria@oakview.example", "--role", "chef")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
