package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chriscorrea/tally/internal/counter"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestRunSingleFile(t *testing.T) {
	path := writeTempFile(t, "poem.txt", "hello\nworld\n")

	cfg := Config{
		Sources:   []string{path},
		Selection: counter.Selection{Bytes: true, Lines: true, Words: true},
		Quiet:     true,
	}

	out, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := "12\t2\t2\t" + path + "\n"
	if out != want {
		t.Errorf("Run() = %q, want %q", out, want)
	}
}

func TestRunMultipleFilesEmitsTotal(t *testing.T) {
	a := writeTempFile(t, "a.txt", "one two\n")
	b := writeTempFile(t, "b.txt", "three four five\n")

	cfg := Config{
		Sources:   []string{a, b},
		Selection: counter.Selection{Lines: true, Words: true},
		Quiet:     true,
	}

	out, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Run() produced %d lines, want 3 (two sources + total):\n%s", len(lines), out)
	}
	if lines[0] != "1\t2\t"+a {
		t.Errorf("first line = %q, want %q", lines[0], "1\t2\t"+a)
	}
	if lines[1] != "1\t3\t"+b {
		t.Errorf("second line = %q, want %q", lines[1], "1\t3\t"+b)
	}
	if lines[2] != "2\t5\ttotal" {
		t.Errorf("total line = %q, want %q", lines[2], "2\t5\ttotal")
	}
}

func TestRunSingleFileNoTotal(t *testing.T) {
	path := writeTempFile(t, "one.txt", "solo\n")

	cfg := Config{
		Sources:   []string{path},
		Selection: counter.Selection{Words: true},
		Quiet:     true,
	}

	out, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Contains(out, "total") {
		t.Errorf("Run() with one source should not emit a totals row, got %q", out)
	}
}

func TestRunMissingSourceFails(t *testing.T) {
	cfg := Config{
		Sources:   []string{"/no/such/file.txt"},
		Selection: counter.Selection{Bytes: true},
		Quiet:     true,
	}

	out, err := Run(context.Background(), cfg)
	if err == nil {
		t.Fatal("Run() expected error for missing source")
	}
	if out != "" {
		t.Errorf("Run() output = %q, want empty when the only source fails", out)
	}
}

func TestRunPartialFailure(t *testing.T) {
	good := writeTempFile(t, "good.txt", "still counted\n")

	cfg := Config{
		Sources:   []string{"/no/such/file.txt", good},
		Selection: counter.Selection{Words: true},
		Quiet:     true,
	}

	out, err := Run(context.Background(), cfg)
	if err == nil {
		t.Fatal("Run() expected error when a source fails")
	}
	if !strings.Contains(out, good) {
		t.Errorf("Run() should still report the successful source, got %q", out)
	}
	if !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("Run() error should name the failure count, got %v", err)
	}
}

func TestRunNoSources(t *testing.T) {
	_, err := Run(context.Background(), Config{Selection: counter.Selection{Bytes: true}})
	if err == nil {
		t.Fatal("Run() expected error for empty source list")
	}
}

func TestRunHTMLFileWithSelector(t *testing.T) {
	html := `<html><body><div id="body"><p>counted words here</p></div><p>ignored tail</p></body></html>`
	path := writeTempFile(t, "page.html", html)

	cfg := Config{
		Sources:   []string{path},
		Selection: counter.Selection{Words: true},
		Selector:  "#body",
		Quiet:     true,
	}

	out, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := "3\t" + path + "\n"
	if out != want {
		t.Errorf("Run() = %q, want %q (only selector content counted)", out, want)
	}
}

func TestRunForceHTML(t *testing.T) {
	html := "<html>\n<body>\n<p>alpha beta</p>\n</body>\n</html>\n"
	path := writeTempFile(t, "page.html", html)

	plain := Config{
		Sources:   []string{path},
		Selection: counter.Selection{Words: true},
		Quiet:     true,
	}
	extracted := plain
	extracted.ForceHTML = true

	plainOut, err := Run(context.Background(), plain)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	extractedOut, err := Run(context.Background(), extracted)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// raw markup counts tag runs as words; extracted text must not
	if plainOut == extractedOut {
		t.Errorf("ForceHTML should change what gets counted: plain %q vs extracted %q", plainOut, extractedOut)
	}
	if want := "2\t" + path + "\n"; extractedOut != want {
		t.Errorf("Run() with ForceHTML = %q, want %q", extractedOut, want)
	}
}
