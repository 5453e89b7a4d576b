package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestEndToEndWorkflow drives a built habitburn binary through a typical
// session against an isolated HOME. Build the binary into ../../bin first,
// or point HABITBURN_BIN_DIR at it.
func TestEndToEndWorkflow(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get cwd: %v", err)
	}

	binDir := os.Getenv("HABITBURN_BIN_DIR")
	if binDir == "" {
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)
	cliPath := filepath.Join(binDir, "habitburn")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s; build it first", cliPath)
	}

	tempDir := t.TempDir()
	t.Logf("Running test in temp dir: %s", tempDir)

	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "HOME=") && !strings.HasPrefix(e, "HABITBURN_") {
			env = append(env, e)
		}
	}
	env = append(env,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("HABITBURN_DSN=%s", filepath.Join(tempDir, "habitburn.db")),
		"HABITBURN_TIMEZONE=UTC",
	)

	t.Log("Initializing storage...")
	runCmd(t, cliPath, env, "init")
	if _, err := os.Stat(filepath.Join(tempDir, ".config", "habitburn", "config.toml")); err != nil {
		t.Errorf("Expected init to write a default config: %v", err)
	}

	t.Log("Adding habits...")
	out := runCmd(t, cliPath, env, "habit", "add", "Read", "--difficulty=hard", "--reminder=07:00")
	if !strings.Contains(out, "First Step") {
		t.Errorf("Expected first habit achievement, got:\n%s", out)
	}
	runCmd(t, cliPath, env, "habit", "add", "Walk", "--category=fitness", "--difficulty=easy")

	t.Log("Completing habits...")
	out = runCmd(t, cliPath, env, "habit", "toggle", "Read")
	if !strings.Contains(out, "+30 XP") {
		t.Errorf("Expected hard habit to award 30 XP, got:\n%s", out)
	}
	out = runCmd(t, cliPath, env, "habit", "toggle", "walk")
	if !strings.Contains(out, "Perfect Day") {
		t.Errorf("Expected Perfect Day after completing every habit, got:\n%s", out)
	}

	out = runCmd(t, cliPath, env, "stats")
	if !strings.Contains(out, "Completed today:   2/2") {
		t.Errorf("Expected both habits completed in stats, got:\n%s", out)
	}
	out = runCmd(t, cliPath, env, "achievements", "--unlocked")
	if !strings.Contains(out, "Perfect Day") {
		t.Errorf("Expected Perfect Day in unlocked achievements, got:\n%s", out)
	}

	t.Log("Checking reminders...")
	runCmd(t, cliPath, env, "settings", "--notifications=true")
	runCmd(t, cliPath, env, "notify", "--dry-run")

	t.Log("Backing up...")
	runCmd(t, cliPath, env, "backup", "create")
	out = runCmd(t, cliPath, env, "backup", "list")
	if !strings.Contains(out, "habitburn-") {
		t.Errorf("Expected a backup in the listing, got:\n%s", out)
	}

	out = runCmd(t, cliPath, env, "doctor")
	t.Logf("Doctor output:\n%s", out)
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}
