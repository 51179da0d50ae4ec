package build

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"csstokens/config"
	"csstokens/state"
)

const sampleTheme = `@charset "UTF-8";
:root {
  --brand-hue: 211;
  --primary: hsl(var(--brand-hue), 100%, 50%);
  --space-10: calc(var(--space-2) * 5);
  --space-2: 4px;
  --weight: 600;
  --font: "Inter", sans-serif;
  --broken: var(--missing);
}
`

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	env.Format = cfg.Output.Format
	env.Sort = cfg.Output.Sort
	return ctx, env
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestProcess_SingleFile(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "theme.css"), sampleTheme)
	dstDir := t.TempDir()

	if err := process(ctx, src, dstDir, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	got := readFile(t, filepath.Join(dstDir, "theme.css"))
	for _, want := range []string{
		"  --primary: hsl(211, 100%, 50%);\n",
		"  --space-10: 20px;\n",
		"  --font: \"Inter\", sans-serif;\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "--broken") {
		t.Errorf("unresolved token must be dropped:\n%s", got)
	}
	if !strings.HasPrefix(got, ":root {\n  --brand-hue: 211;\n") {
		t.Errorf("tokens must keep declaration order:\n%s", got)
	}
}

func TestProcess_Overwrite(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "theme.css"), ":root { --a: 1px; }")
	dst := writeFile(t, filepath.Join(t.TempDir(), "out.css"), "old")

	err := process(ctx, src, dst, env, env.Log)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected error for existing destination, got %v", err)
	}

	env.Overwrite = true
	if err := process(ctx, src, dst, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if got := readFile(t, dst); !strings.Contains(got, "--a: 1px;") {
		t.Errorf("destination was not overwritten: %q", got)
	}
}

func TestProcess_Strict(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "theme.css"), sampleTheme)
	dst := filepath.Join(t.TempDir(), "out", "tokens.css")
	env.Cfg.Engine.Strict = true

	err := process(ctx, src, dst, env, env.Log)
	if err == nil {
		t.Fatal("expected error in strict mode")
	}
	if !strings.Contains(err.Error(), "--broken") {
		t.Errorf("error must name dropped tokens: %v", err)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("nothing must be written in strict mode")
	}
}

func TestProcess_Directory(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "10-dark.css"), ":root { --bg: black; }")
	writeFile(t, filepath.Join(dir, "2-base.css"), ":root { --bg: white; --fg: var(--bg); }")
	writeFile(t, filepath.Join(dir, "node_modules", "x", "lib.css"), ":root { --lib: 1; }")
	dst := filepath.Join(t.TempDir(), "tokens.json")
	env.Format = config.OutputFormatJson

	if err := process(ctx, dir, dst, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	got := readFile(t, dst)
	if !strings.Contains(got, `"--fg": {`) || !strings.Contains(got, `"hex": "#000000"`) {
		t.Errorf("unexpected output:\n%s", got)
	}
	if strings.Contains(got, "--lib") {
		t.Errorf("excluded directory was read:\n%s", got)
	}
}

func TestProcess_Override(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "theme.css"), ":root { --gap: 4px; --double: calc(var(--gap) * 2); }")
	env.Override = writeFile(t, filepath.Join(dir, "compact.css"), ":root { --gap: 2px; }")
	dst := filepath.Join(dir, "out.css")

	if err := process(ctx, src, dst, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if got := readFile(t, dst); !strings.Contains(got, "--double: 4px;") {
		t.Errorf("override must take part in resolution:\n%s", got)
	}
}

func TestProcess_NonExistentPath(t *testing.T) {
	ctx, env := setupTestEnv(t)
	err := process(ctx, "/nonexistent/path/theme.css", "", env, env.Log)
	if err == nil {
		t.Fatal("Expected error for non-existent path, got nil")
	}
	if !strings.Contains(err.Error(), "input source was not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestProcess_CancelledContext(t *testing.T) {
	ctx, env := setupTestEnv(t)
	cancelCtx, cancel := context.WithCancel(ctx)
	cancel()

	src := writeFile(t, filepath.Join(t.TempDir(), "theme.css"), ":root { --a: 1px; }")
	if err := process(cancelCtx, src, t.TempDir(), env, env.Log); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestProcess_Report(t *testing.T) {
	ctx, env := setupTestEnv(t)
	rptPath := filepath.Join(t.TempDir(), "report.zip")
	rpt, err := (&config.ReporterConfig{Destination: rptPath}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	env.Rpt = rpt

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "base", "colors.css"), ":root { --fg: black; }")
	src := writeFile(t, filepath.Join(dir, "My Theme.css"), "@import \"base/colors.css\";\n:root { --a: 1px; }")
	if err := process(ctx, src, filepath.Join(t.TempDir(), "out.css"), env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if err := rpt.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	zr, err := zip.OpenReader(rptPath)
	if err != nil {
		t.Fatalf("report was not written: %v", err)
	}
	defer zr.Close()

	var dump, sources []string
	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "tokens/my-theme-"):
			dump = append(dump, f.Name)
		case strings.HasPrefix(f.Name, "sources/"):
			// sources/<build id>/<path>
			parts := strings.SplitN(f.Name, "/", 3)
			sources = append(sources, parts[len(parts)-1])
		}
	}
	if len(dump) != 1 {
		t.Errorf("token dump entries = %q", dump)
	}
	slices.Sort(sources)
	if want := []string{"My Theme.css", "base/colors.css"}; !slices.Equal(sources, want) {
		t.Errorf("source entries = %q, want %q", sources, want)
	}
}

type failingCloser struct {
	bytes.Buffer
}

func (*failingCloser) Close() error { return errors.New("disk full") }

func TestWriteTokens_CloseError(t *testing.T) {
	exp, err := newExporter(config.OutputFormatText, config.SortOrderSource, 2, "")
	if err != nil {
		t.Fatalf("newExporter() error = %v", err)
	}
	res := sampleResult(t)

	out := &failingCloser{}
	err = writeTokens(exp, out, "tokens.css", res)
	if err == nil {
		t.Fatal("expected error when destination cannot be closed")
	}
	if !strings.Contains(err.Error(), "tokens.css") || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := writeTokens(exp, nopCloser{&buf}, "STDOUT", res); err != nil {
		t.Fatalf("writeTokens() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), ":root {\n") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

// syncBuffer collects watch output written from watcher goroutine.
type syncBuffer struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	writes chan struct{}
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	n, err := b.buf.Write(p)
	b.mu.Unlock()
	b.writes <- struct{}{}
	return n, err
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "theme.css"), ":root { --gap: 4px; }")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := &syncBuffer{writes: make(chan struct{}, 8)}
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, src, out, env, 20*time.Millisecond, env.Log)
	}()

	wait := func() {
		t.Helper()
		select {
		case <-out.writes:
		case err := <-done:
			t.Fatalf("watch() returned early: %v", err)
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for output")
		}
	}

	wait()
	if !strings.Contains(out.String(), "--gap: 4px;") {
		t.Fatalf("unexpected first output:\n%s", out.String())
	}

	time.Sleep(50 * time.Millisecond)
	writeFile(t, src, ":root { --gap: 8px; }")
	wait()
	if !strings.Contains(out.String(), "--gap: 8px;") {
		t.Errorf("changes were not exported:\n%s", out.String())
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch() did not stop after cancellation")
	}
}
