package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScenariosCommand(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		check       bool
		wantErr     bool
		wantContain []string
	}{
		{
			name: "kept",
			args: []string{"kept"},
			wantContain: []string{
				"1: Objects on the stack are kept.",
				"Collected 0 objects, 2 left.",
				"roots: 1 2",
				"Collected 2 objects, 0 left.",
			},
		},
		{
			name:  "reclaimed with check",
			args:  []string{"reclaimed"},
			check: true,
			wantContain: []string{
				"Unreachable objects are reclaimed.",
				"Collected 2 objects, 0 left.",
			},
		},
		{
			name: "nested",
			args: []string{"nested"},
			wantContain: []string{
				"Collected 0 objects, 7 left.",
				"roots: ((1, 2), (3, 4))",
				"Collected 7 objects, 0 left.",
			},
		},
		{
			name:        "all",
			args:        nil,
			check:       true,
			wantContain: []string{"1: Objects", "2: Unreachable", "3: Nested", "4: Allocation past"},
		},
		{
			name:    "unknown",
			args:    []string{"nope"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			scenarioCheck = tt.check

			output, err := captureOutput(t, func() error {
				return runScenarios(tt.args)
			})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestScenariosJSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	t.Cleanup(resetFlags)

	output, err := captureOutput(t, func() error {
		return runScenarios([]string{"nested", "threshold"})
	})
	require.NoError(t, err)
	assertJSON(t, output)

	var results []scenarioResult
	require.NoError(t, json.Unmarshal([]byte(output), &results))
	require.Len(t, results, 2)

	nested := results[0]
	require.Equal(t, []string{"((1, 2), (3, 4))"}, nested.Roots)
	require.Equal(t, 7, nested.Final.Reclaimed)

	threshold := results[1]
	var auto int
	for _, c := range threshold.Cycles {
		if c.Automatic {
			auto++
			require.Zero(t, c.Reclaimed, "every scalar is still rooted")
		}
	}
	require.Equal(t, 2, auto)
	require.Len(t, threshold.Roots, 17)
	require.Equal(t, 17, threshold.Final.Reclaimed)
}

func TestBadLocale(t *testing.T) {
	resetFlags()
	locale = "not a locale!"
	t.Cleanup(resetFlags)

	_, err := captureOutput(t, func() error {
		return runScenarios(nil)
	})
	require.ErrorContains(t, err, "invalid --locale")
}
