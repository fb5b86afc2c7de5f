package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTriggerRejectsUnknownJob(t *testing.T) {
	cli := &JobsCLI{}

	_, err := cli.Trigger(context.Background(), "finance:month_end")
	require.Error(t, err)
}

func TestNilCLIIsSafe(t *testing.T) {
	var cli *JobsCLI

	_, err := cli.Trigger(context.Background(), "anything")
	require.Error(t, err)

	_, err = cli.InspectQueue(context.Background())
	require.Error(t, err)

	_, err = cli.ListScheduled(context.Background(), 5)
	require.Error(t, err)

	require.NoError(t, (&JobsCLI{}).Close())
}
