package database

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStepper 记录 Steps 调用并模拟版本推进
type fakeStepper struct {
	version  uint
	nilVer   bool
	stepErr  error
	stepArgs []int
}

func (f *fakeStepper) Version() (uint, bool, error) {
	if f.nilVer {
		return 0, false, migrate.ErrNilVersion
	}
	return f.version, false, nil
}

func (f *fakeStepper) Steps(n int) error {
	f.stepArgs = append(f.stepArgs, n)
	if f.stepErr != nil {
		return f.stepErr
	}
	if int(f.version)+n <= 0 {
		f.nilVer = true
		f.version = 0
		return nil
	}
	f.version = uint(int(f.version) + n)
	return nil
}

func TestRollbackOne_StepsBackOnce(t *testing.T) {
	m := &fakeStepper{version: 2}

	require.NoError(t, rollbackOne(m, zap.NewNop()))
	assert.Equal(t, []int{-1}, m.stepArgs)
	assert.Equal(t, uint(1), m.version)
}

func TestRollbackOne_LastVersion(t *testing.T) {
	m := &fakeStepper{version: 1}

	require.NoError(t, rollbackOne(m, zap.NewNop()))
	assert.True(t, m.nilVer)
}

func TestRollbackOne_NoMigrations(t *testing.T) {
	m := &fakeStepper{nilVer: true}

	require.NoError(t, rollbackOne(m, zap.NewNop()))
	assert.Empty(t, m.stepArgs, "无迁移记录时不应回滚")
}

func TestRollbackOne_NoChangeIsNoop(t *testing.T) {
	m := &fakeStepper{version: 1, stepErr: migrate.ErrNoChange}

	assert.NoError(t, rollbackOne(m, zap.NewNop()))
}

func TestRollbackOne_Error(t *testing.T) {
	boom := errors.New("dirty database")
	m := &fakeStepper{version: 2, stepErr: boom}

	err := rollbackOne(m, zap.NewNop())
	assert.ErrorIs(t, err, boom)
}
