package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// =============================================================================
// UNIFIED CONFIG TESTS
// =============================================================================

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"FSBOT_ROOT", "FSBOT_ADDR", "FSBOT_DEBUG", "FSBOT_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "fsbot" {
		t.Errorf("expected Name=fsbot, got %s", cfg.Name)
	}
	if cfg.Workspace.Root != "." {
		t.Errorf("expected Root=., got %s", cfg.Workspace.Root)
	}
	if cfg.Logging.DebugMode {
		t.Error("debug mode should be off by default")
	}
	if !cfg.UI.RenderMarkdown {
		t.Error("markdown rendering should be on by default")
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".fsbot", "config.yaml")

	cfg := DefaultConfig()
	cfg.Workspace.Root = tmpDir
	cfg.Server.Addr = ":9999"
	cfg.Logging.Categories = map[string]bool{"tools": false}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Workspace.Root != tmpDir {
		t.Errorf("expected Root=%s, got %s", tmpDir, loaded.Workspace.Root)
	}
	if loaded.Server.Addr != ":9999" {
		t.Errorf("expected Addr=:9999, got %s", loaded.Server.Addr)
	}
	if loaded.Logging.IsCategoryEnabled("tools") {
		t.Error("tools category should stay disabled (debug mode off)")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != DefaultServerConfig().Addr {
		t.Errorf("expected default addr, got %s", cfg.Server.Addr)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("workspace: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workspace.Root = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}

	cfg.UI.Theme = "neon"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid theme")
	}
	cfg.UI.Theme = "dark"

	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid level")
	}
	cfg.Logging.Level = "debug"

	cfg.Workspace.SearchCacheTTL = "soon"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for bad ttl")
	}
	cfg.Workspace.SearchCacheTTL = "1m"

	file := filepath.Join(cfg.Workspace.Root, "plain.txt")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg.Workspace.Root = file
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for non-directory root")
	}

	cfg.Workspace.Root = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty root")
	}
}

func TestConfig_DurationFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.GetSearchCacheTTL(); got != 0 {
		t.Errorf("default GetSearchCacheTTL = %v, want uncached", got)
	}
	cfg.Workspace.SearchCacheTTL = "garbage"
	if got := cfg.GetSearchCacheTTL(); got != 0 {
		t.Errorf("fallback GetSearchCacheTTL = %v", got)
	}
	cfg.Workspace.SearchCacheTTL = "15s"
	if got := cfg.GetSearchCacheTTL(); got != 15*time.Second {
		t.Errorf("GetSearchCacheTTL = %v", got)
	}
	cfg.Server.SessionTTL = "5m"
	if got := cfg.GetSessionTTL(); got != 5*time.Minute {
		t.Errorf("GetSessionTTL = %v", got)
	}
	cfg.Server.SessionTTL = ""
	if got := cfg.GetSessionTTL(); got != 30*time.Minute {
		t.Errorf("fallback GetSessionTTL = %v", got)
	}
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	lc := LoggingConfig{}
	if lc.IsCategoryEnabled("boot") {
		t.Error("disabled debug mode must disable every category")
	}
	lc.DebugMode = true
	if !lc.IsCategoryEnabled("boot") {
		t.Error("nil category map enables everything")
	}
	lc.Categories = map[string]bool{"boot": false}
	if lc.IsCategoryEnabled("boot") {
		t.Error("boot explicitly disabled")
	}
	if !lc.IsCategoryEnabled("api") {
		t.Error("unlisted category defaults to enabled")
	}
}

func TestConfig_FileOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workspace.Root = "/srv/data"
	cfg.Workspace.SearchCacheTTL = "1m"
	cfg.Workspace.IncludeHidden = false

	opts := cfg.FileOptions()
	if opts.Root != "/srv/data" || opts.CacheTTL != time.Minute {
		t.Errorf("FileOptions = %+v", opts)
	}
	if opts.IncludeHidden || !opts.Watch {
		t.Errorf("flags not carried: %+v", opts)
	}
	if len(opts.IgnorePatterns) != 0 {
		t.Errorf("default IgnorePatterns = %v, want none", opts.IgnorePatterns)
	}
}
