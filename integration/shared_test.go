//go:build basic || database

// Package integration contains end-to-end tests that drive the onboard binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// Database tests need Docker: go test -tags database ./integration
package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedOnboardPath holds the path to a shared onboard binary built once for all tests.
	sharedOnboardPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getOnboardBinary returns the path to the onboard binary, building it once if needed.
func getOnboardBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "onboard-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		onboardPath := filepath.Join(tempDir, "onboard")
		buildCmd := exec.Command("go", "build", "-o", onboardPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build onboard: %v\n%s", err, out))
		}

		sharedOnboardPath = onboardPath
	})

	return sharedOnboardPath
}

// cliResult captures one invocation of the binary.
type cliResult struct {
	Stdout string
	Stderr string
	Err    error
}

// runOnboard runs the binary from the integration directory with an isolated HOME,
// so the default SQLite store never touches the real one.
func runOnboard(t *testing.T, env []string, args ...string) cliResult {
	t.Helper()

	cmd := exec.Command(getOnboardBinary(), args...)
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir(), "ONBOARD_COLOR=no")
	cmd.Env = append(cmd.Env, env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		t.Logf("Command failed: %s\nStdout: %s\nStderr: %s", cmd.String(), stdout.String(), stderr.String())
	}
	return cliResult{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}
