package cli_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"tasklist/internal/cli"
	"tasklist/internal/commands"
	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
	"tasklist/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config, errOut io.Writer) (service.Service, error) {
		return svc, nil
	}
}

// isolate points the config directory at a fresh temp dir.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "")
	t.Setenv("TASKLIST_BIND_ADDR", "")
	t.Setenv("TASKLIST_METRICS_NAMESPACE", "")
}

func run(t *testing.T, factory cli.ServiceFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	var outBuf, errBuf bytes.Buffer
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	isolate(t)
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	isolate(t)
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	isolate(t)
	stdout, stderr, code := run(t, testFactory(testutil.NewFakeService()), "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"Usage:", "tasklist serve", "tasklist list"} {
		if !bytes.Contains([]byte(stdout), []byte(want)) {
			t.Errorf("expected help output to contain %q", want)
		}
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	isolate(t)
	stdout, stderr, code := run(t, testFactory(testutil.NewFakeService()), "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "tasklist 0.1.0\n" {
		t.Errorf("expected 'tasklist 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	isolate(t)
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsRunsList(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	svc.AddTask("a1", "Buy milk")
	svc.AddTask("a2", "Walk dog")

	stdout, stderr, code := run(t, testFactory(svc))

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "Task List\n---------\n  - Buy milk\n  - Walk dog\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestDispatcher_ErrorIsRed(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	svc.Err = testutil.ErrNetwork

	stdout, _, code := run(t, testFactory(svc), "list")
	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !bytes.Contains([]byte(stdout), []byte("\x1b[31mFailed to load tasks. Please try again.\x1b[0m")) {
		t.Errorf("expected red error text, got %q", stdout)
	}

	stdout, _, _ = run(t, testFactory(svc), "list", "--no-color")
	if bytes.Contains([]byte(stdout), []byte("\x1b[")) {
		t.Errorf("expected no escape codes with --no-color, got %q", stdout)
	}
}

func TestDispatcher_ConfigError(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	// A directory where the settings file should be cannot be read.
	if err := os.Mkdir(filepath.Join(dir, config.EnvFile), 0700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "list", "--config", dir)
	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.ConfigError, code, stderr)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	isolate(t)
	factory := func(ctx context.Context, cfg *config.Config, errOut io.Writer) (service.Service, error) {
		return nil, errors.New("boom")
	}

	_, stderr, code := run(t, factory, "list")
	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: boom\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_HelpNeedsNoBackend(t *testing.T) {
	isolate(t)
	_, _, code := run(t, nil, "help")
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
}
