package main

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	calls   []string
	steps   int
	forced  int
	err     error
	version uint
	dirty   bool
}

func (f *fakeMigrator) Up() error {
	f.calls = append(f.calls, "up")
	return f.err
}

func (f *fakeMigrator) Down() error {
	f.calls = append(f.calls, "down")
	return f.err
}

func (f *fakeMigrator) Steps(n int) error {
	f.calls = append(f.calls, "steps")
	f.steps = n
	return f.err
}

func (f *fakeMigrator) Force(version int) error {
	f.calls = append(f.calls, "force")
	f.forced = version
	return f.err
}

func (f *fakeMigrator) Drop() error {
	f.calls = append(f.calls, "drop")
	return f.err
}

func (f *fakeMigrator) Version() (uint, bool, error) {
	f.calls = append(f.calls, "version")
	return f.version, f.dirty, f.err
}

func TestRunAction_UpIgnoresNoChange(t *testing.T) {
	t.Parallel()

	logger, _ := test.NewNullLogger()
	m := &fakeMigrator{err: migrate.ErrNoChange}

	require.NoError(t, runAction(logger, m, "up", []string{"up"}))
	require.NoError(t, runAction(logger, m, "down", []string{"down"}))
	assert.Equal(t, []string{"up", "down"}, m.calls)
}

func TestRunAction_StepsAndForce(t *testing.T) {
	t.Parallel()

	logger, _ := test.NewNullLogger()
	m := &fakeMigrator{}

	require.NoError(t, runAction(logger, m, "steps", []string{"steps", "-1"}))
	assert.Equal(t, -1, m.steps)

	require.NoError(t, runAction(logger, m, "force", []string{"force", "2"}))
	assert.Equal(t, 2, m.forced)

	assert.Error(t, runAction(logger, m, "steps", []string{"steps"}))
	assert.Error(t, runAction(logger, m, "force", []string{"force", "latest"}))
}

func TestRunAction_Version(t *testing.T) {
	t.Parallel()

	logger, hook := test.NewNullLogger()

	require.NoError(t, runAction(logger, &fakeMigrator{version: 2, dirty: true}, "version", nil))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, uint(2), entry.Data["version"])
	assert.Equal(t, true, entry.Data["dirty"])

	require.NoError(t, runAction(logger, &fakeMigrator{err: migrate.ErrNilVersion}, "version", nil))
	assert.Equal(t, "no migration applied", hook.LastEntry().Message)
}

func TestRunAction_Errors(t *testing.T) {
	t.Parallel()

	logger, _ := test.NewNullLogger()
	boom := errors.New("dirty database")

	assert.ErrorIs(t, runAction(logger, &fakeMigrator{err: boom}, "up", nil), boom)
	assert.Error(t, runAction(logger, &fakeMigrator{}, "sideways", nil))
}

func TestEffectiveConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/etc/hr/config.yaml")

	assert.Equal(t, "custom.yaml", effectiveConfigPath("custom.yaml"))
	assert.Equal(t, "/etc/hr/config.yaml", effectiveConfigPath(""))
}
