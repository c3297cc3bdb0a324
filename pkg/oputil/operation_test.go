package oputil

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationSettlesAtMostOnce(t *testing.T) {
	t.Run("SuccessSticks", func(t *testing.T) {
		op := newOperation[string](nil, nil)

		op.succeed("first")
		op.succeed("second")
		op.fail(errors.New("too late"))

		result, err := op.outcome()
		require.NoError(t, err)
		assert.Equal(t, "first", result)
	})

	t.Run("FailureSticks", func(t *testing.T) {
		op := newOperation[string](nil, nil)

		omg := errors.New("terminal")
		op.fail(omg)
		op.succeed("too late")
		op.fail(errors.New("also too late"))

		result, err := op.outcome()
		require.ErrorIs(t, err, omg)
		assert.Empty(t, result)
	})
}

func TestOperationNameFallback(t *testing.T) {
	named := newOperation[string](nil, []RunOption{WithName("sync-comments")})
	assert.Equal(t, "sync-comments", named.name)

	unnamed := newOperation[string](nil, nil)
	assert.True(t, strings.HasPrefix(unnamed.name, "operation-"))
	assert.NotEmpty(t, unnamed.id)
}

func TestOperationRecordsAreIndependent(t *testing.T) {
	one := newOperation[string](nil, nil)
	two := newOperation[string](nil, nil)

	assert.NotEqual(t, one.id, two.id)

	one.succeed("one")
	two.fail(errors.New("two"))

	result, err := one.outcome()
	require.NoError(t, err)
	assert.Equal(t, "one", result)

	_, err = two.outcome()
	require.Error(t, err)
}
