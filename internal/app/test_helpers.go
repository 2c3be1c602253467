package app

import (
	"bytes"
	"context"
	"os"
	"sync"
	"testing"

	"github.com/vk/sweepdeck/internal/participant"
	"github.com/vk/sweepdeck/internal/runconfig"
	"github.com/vk/sweepdeck/internal/timing"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// StaticSolver returns a fixed timing, or Err when set.
type StaticSolver struct {
	Timing *timing.Timing
	Err    error
	Calls  int
}

func (s *StaticSolver) Solve(ctx context.Context, cfg runconfig.Frozen) (*timing.Timing, error) {
	s.Calls++
	return s.Timing, s.Err
}

// SetupAppTest creates a new app for a single-process run of cfg, capturing
// the report and the debug log separately.
func SetupAppTest(t *testing.T, cfg *Config, solver Solver) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()
	return SetupAppTestAs(t, cfg, participant.Single, solver)
}

// SetupAppTestAs is SetupAppTest for an arbitrary participant.
func SetupAppTestAs(t *testing.T, cfg *Config, p participant.Participant, solver Solver) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	run, err := cfg.Run.Validate(p.Size)
	if err != nil {
		t.Fatalf("test configuration is invalid: %v", err)
	}

	outBuffer, logBuffer := &SafeBuffer{}, &SafeBuffer{}
	cfg.LogLevel = "debug"
	testApp := NewApp(outBuffer, logBuffer, cfg, run, p, solver)

	t.Cleanup(func() {
		if os.Getenv("SWEEPDECK_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, outBuffer, logBuffer
}
