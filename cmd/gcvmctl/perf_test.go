package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPerfCommand(t *testing.T) {
	resetFlags()
	perfRounds = 200
	t.Cleanup(resetFlags)

	output, err := captureOutput(t, runPerf)
	require.NoError(t, err)
	assertContains(t, output, []string{
		"Performance of GC.",
		"Allocated: 4,000 objects",
		"Reclaimed: 4,000 objects",
		"Throughput:",
	})
}

func TestPerfJSON(t *testing.T) {
	resetFlags()
	perfRounds = 50
	perfBatch = 10
	jsonOut = true
	t.Cleanup(resetFlags)

	output, err := captureOutput(t, runPerf)
	require.NoError(t, err)

	var res perfResult
	require.NoError(t, json.Unmarshal([]byte(output), &res))
	require.Equal(t, 500, res.Allocated)
	require.Equal(t, 500, res.Reclaimed)
	require.Positive(t, res.AutoCycles)
	require.Equal(t, res.AutoCycles+1, res.Cycles, "destroy adds one explicit cycle")
}

func TestPerfOutOfMemory(t *testing.T) {
	resetFlags()
	perfRounds = 1
	perfBatch = 10
	perfMaxObjects = 5
	quiet = true
	t.Cleanup(resetFlags)

	_, err := captureOutput(t, runPerf)
	require.ErrorContains(t, err, "out of memory")
}
