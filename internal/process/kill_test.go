package process

// Notes:
// - Real kill behavior is covered by the verifier integration tests; unit
//   tests only check that unknown or non-positive PIDs are harmless.
// - PID 0 would target the current process group without the guard.

import "testing"

// ---------------------------------------------------------------------------
// TestKillProcessGroup - Invalid PID Handling
// ---------------------------------------------------------------------------

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pid  int
	}{
		{name: "unknown pid", pid: 999999999},
		{name: "zero pid is ignored", pid: 0},
		{name: "negative pid is ignored", pid: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			KillProcessGroup(tt.pid)
		})
	}
}
