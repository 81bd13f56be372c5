package main

import (
	"testing"

	"github.com/chriscorrea/tally/internal/counter"
	"github.com/chriscorrea/tally/internal/report"

	"github.com/spf13/cobra"
)

func newTestCommand(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "tally"}
	addFlags(cmd)
	return cmd
}

// the classic wc default applies only to a bare invocation; any explicit
// metric flag, including --chars alone, suppresses it
func TestBuildConfigSelectionPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected counter.Selection
	}{
		{
			name:     "no flags falls back to bytes lines words",
			args:     nil,
			expected: counter.Selection{Bytes: true, Lines: true, Words: true},
		},
		{
			name:     "chars alone suppresses the fallback",
			args:     []string{"--chars"},
			expected: counter.Selection{Chars: true},
		},
		{
			name:     "chars shorthand behaves the same",
			args:     []string{"-m"},
			expected: counter.Selection{Chars: true},
		},
		{
			name:     "lines alone suppresses the fallback",
			args:     []string{"--lines"},
			expected: counter.Selection{Lines: true},
		},
		{
			name:     "extended flag alone suppresses the fallback",
			args:     []string{"--sentences"},
			expected: counter.Selection{Sentences: true},
		},
		{
			name:     "unique alone suppresses the fallback",
			args:     []string{"--unique"},
			expected: counter.Selection{UniqueWords: true},
		},
		{
			name:     "explicit flags combine without the fallback",
			args:     []string{"-c", "-m"},
			expected: counter.Selection{Bytes: true, Chars: true},
		},
		{
			name:     "all four core flags together",
			args:     []string{"-c", "-l", "-w", "-m"},
			expected: counter.Selection{Bytes: true, Lines: true, Words: true, Chars: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newTestCommand(t)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags(%v) error = %v", tt.args, err)
			}

			cfg, err := buildConfig(cmd, nil)
			if err != nil {
				t.Fatalf("buildConfig() error = %v", err)
			}

			if cfg.Selection != tt.expected {
				t.Errorf("buildConfig(%v) Selection = %+v, want %+v", tt.args, cfg.Selection, tt.expected)
			}
		})
	}
}

func TestBuildConfigSources(t *testing.T) {
	t.Run("no arguments defaults to stdin", func(t *testing.T) {
		cmd := newTestCommand(t)
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("ParseFlags() error = %v", err)
		}

		cfg, err := buildConfig(cmd, nil)
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}

		if len(cfg.Sources) != 1 || cfg.Sources[0] != report.StdinLabel {
			t.Errorf("buildConfig() Sources = %v, want [%s]", cfg.Sources, report.StdinLabel)
		}
	})

	t.Run("positional arguments pass through in order", func(t *testing.T) {
		cmd := newTestCommand(t)
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("ParseFlags() error = %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"a.txt", "b.txt"})
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}

		if len(cfg.Sources) != 2 || cfg.Sources[0] != "a.txt" || cfg.Sources[1] != "b.txt" {
			t.Errorf("buildConfig() Sources = %v, want [a.txt b.txt]", cfg.Sources)
		}
	})
}
