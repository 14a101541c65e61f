package cmd

import (
	"path/filepath"
	"testing"

	"github.com/zhubert/worklog/config"
)

// setConfigFlag sets a config command flag as if it came from the
// command line, and restores the default afterwards.
func setConfigFlag(t *testing.T, name, value string) {
	t.Helper()
	flag := configCmd.Flags().Lookup(name)
	if flag == nil {
		t.Fatalf("--%s flag not found", name)
	}
	if err := flag.Value.Set(value); err != nil {
		t.Fatalf("failed to set --%s: %v", name, err)
	}
	flag.Changed = true
	t.Cleanup(func() {
		_ = flag.Value.Set(flag.DefValue)
		flag.Changed = false
	})
}

func TestRunConfig_ShowOnly(t *testing.T) {
	setupTestHome(t)

	if err := runConfig(configCmd, nil); err != nil {
		t.Fatalf("runConfig() failed: %v", err)
	}
}

func TestRunConfig_SetAndPersist(t *testing.T) {
	home := setupTestHome(t)
	dev := filepath.Join(home, "code")

	setConfigFlag(t, "dev-dir", dev)
	setConfigFlag(t, "notify", "true")

	if err := runConfig(configCmd, nil); err != nil {
		t.Fatalf("runConfig() failed: %v", err)
	}

	// A fresh load must see the persisted values
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.GetDevDir() != dev {
		t.Errorf("DevDir = %q, want %q", cfg.GetDevDir(), dev)
	}
	if !cfg.GetNotificationsEnabled() {
		t.Error("NotificationsEnabled should be true after --notify=true")
	}
}
