package pipefilter_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tb/internal/pipefilter"
)

func TestRun_PassesStdinThroughCommand(t *testing.T) {
	out, err := pipefilter.Run(context.Background(), "cat", []byte("hello"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(out))
}

func TestRun_ReturnsStderrOnFailure(t *testing.T) {
	_, err := pipefilter.Run(context.Background(), "echo boom 1>&2; exit 1", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
}
