package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/seoscan/seoscan/internal/config"
)

// TestInitCmd tests configuration file generation.
func TestInitCmd(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".seoscan")

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", path})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("execute: %v", err)
		}

		cf, err := config.LoadConfigFile(path)
		if err != nil {
			t.Fatalf("generated file must be loadable: %v", err)
		}
		// All settings in the template are commented out.
		if cf.Crawl.Concurrency != 0 || cf.Server.Addr != "" {
			t.Errorf("template must not set values: %+v", cf)
		}
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".seoscan")

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", path})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("first execute: %v", err)
		}

		cmd = NewInitCmd()
		cmd.SetArgs([]string{"-o", path})
		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected error for existing file")
		}
		if !strings.Contains(err.Error(), "already exists") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("force overwrites existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".seoscan")

		for _, args := range [][]string{
			{"-o", path},
			{"-o", path, "-f"},
		} {
			cmd := NewInitCmd()
			cmd.SetArgs(args)
			if err := cmd.Execute(); err != nil {
				t.Fatalf("execute %v: %v", args, err)
			}
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", path})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("execute: %v", err)
		}
	})
}
