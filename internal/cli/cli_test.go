package cli

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNew(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	if c == nil {
		t.Fatal("New() returned nil")
	}
	if c.Logger == nil {
		t.Fatal("New() should set a logger")
	}
}

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	if root.Use != "pedigree" {
		t.Errorf("Use = %q, want %q", root.Use, "pedigree")
	}

	want := []string{"layout", "serve", "inspect", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command should register %q", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)

	c.SetLogLevel(log.DebugLevel)
	if got := c.Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("level = %v, want %v", got, log.DebugLevel)
	}
}

func TestConfigPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error = %v", err)
	}

	want := filepath.Join(dir, "pedigree", "config.toml")
	if path != want {
		t.Errorf("configPath() = %q, want %q", path, want)
	}
}
