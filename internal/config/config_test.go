package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/petgallery/internal/petstore"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != petstore.DefaultBaseURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, petstore.DefaultBaseURL)
	}
	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if cfg.NotificationDuration != 5*time.Second {
		t.Fatalf("NotificationDuration = %v, want 5s", cfg.NotificationDuration)
	}
	if cfg.RequestTimeout != 0 {
		t.Fatalf("RequestTimeout = %v, want 0", cfg.RequestTimeout)
	}
	if cfg.ReconcileOnFailure {
		t.Fatal("ReconcileOnFailure should default to false")
	}
	if !cfg.ShowImages || cfg.MaxImageWorkers != defaultMaxImageWorkers {
		t.Fatalf("images = %v/%d, want true/%d", cfg.ShowImages, cfg.MaxImageWorkers, defaultMaxImageWorkers)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "  http://pets.local:9000/api  "
log_file = "  ~/logs/gallery.log  "
log_level = " DEBUG "
notification_seconds = 8
request_timeout_seconds = 15
reconcile_on_failure = true
max_image_workers = 2
show_images = false
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://pets.local:9000/api" {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, "http://pets.local:9000/api")
	}
	if cfg.LogFile != filepath.Join(home, "logs", "gallery.log") {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.NotificationDuration != 8*time.Second {
		t.Fatalf("NotificationDuration = %v, want 8s", cfg.NotificationDuration)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("RequestTimeout = %v, want 15s", cfg.RequestTimeout)
	}
	if !cfg.ReconcileOnFailure {
		t.Fatal("ReconcileOnFailure = false, want true")
	}
	if cfg.MaxImageWorkers != 2 {
		t.Fatalf("MaxImageWorkers = %d, want 2", cfg.MaxImageWorkers)
	}
	if cfg.ShowImages {
		t.Fatal("ShowImages = true, want false")
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "   "
log_file = ""
notification_seconds = 0
max_image_workers = -1
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Fatalf("Load = %+v, want %+v", cfg, want)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
