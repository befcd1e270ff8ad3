package appdirs

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestResolvePortableLayout(t *testing.T) {
	exePath := filepath.Join("/", "apps", "ClipAutomator", "clip-automator")
	dataDir := filepath.Join(filepath.Dir(exePath), "data")

	got, err := resolve(resolveDeps{
		goos:       "linux",
		getenv:     func(string) string { return "true" },
		executable: func() (string, error) { return exePath, nil },
	})
	if err != nil {
		t.Fatalf("resolve() error: %v", err)
	}

	want := Paths{
		Portable:   true,
		ConfigDir:  filepath.Join(dataDir, "config"),
		ConfigFile: filepath.Join(dataDir, "config", "config.toml"),
		LogDir:     filepath.Join(dataDir, "logs"),
		OutputDir:  filepath.Join(dataDir, "output"),
		CacheDir:   filepath.Join(dataDir, "cache"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("resolve() = %+v, want %+v", got, want)
	}
}

func TestResolvePortableExecutableError(t *testing.T) {
	wantErr := errors.New("no executable")

	_, err := resolve(resolveDeps{
		goos:       "linux",
		getenv:     func(string) string { return "1" },
		executable: func() (string, error) { return "", wantErr },
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("resolve() error = %v, want %v", err, wantErr)
	}
}

func TestResolveWindowsLayout(t *testing.T) {
	configRoot := filepath.Join("C:", "Users", "alice", "AppData", "Roaming")
	cacheRoot := filepath.Join("C:", "Users", "alice", "AppData", "Local")

	got, err := resolve(resolveDeps{
		goos:          "windows",
		getenv:        func(string) string { return "" },
		userConfigDir: func() (string, error) { return configRoot, nil },
		userCacheDir:  func() (string, error) { return cacheRoot, nil },
	})
	if err != nil {
		t.Fatalf("resolve() error: %v", err)
	}

	if got.ConfigDir != filepath.Join(configRoot, "ClipAutomator") {
		t.Fatalf("ConfigDir = %q", got.ConfigDir)
	}
	if got.LogDir != filepath.Join(cacheRoot, "ClipAutomator", "logs") {
		t.Fatalf("LogDir = %q", got.LogDir)
	}
}

func TestResolveNonWindowsDefaults(t *testing.T) {
	got, err := resolve(resolveDeps{
		goos:   "linux",
		getenv: func(string) string { return "" },
	})
	if err != nil {
		t.Fatalf("resolve() error: %v", err)
	}

	if got.Portable {
		t.Fatalf("Portable = true, want false")
	}
	if got.OutputDir != "output" {
		t.Fatalf("OutputDir = %q, want %q", got.OutputDir, "output")
	}
	if got.ConfigFile != filepath.Join("config", "config.toml") {
		t.Fatalf("ConfigFile = %q", got.ConfigFile)
	}
}

func TestIsPortableEnabled(t *testing.T) {
	cases := map[string]bool{
		"1":     true,
		"true":  true,
		"TRUE ": true,
		"0":     false,
		"":      false,
		"no":    false,
	}
	for value, want := range cases {
		if got := isPortableEnabled(value); got != want {
			t.Errorf("isPortableEnabled(%q) = %v, want %v", value, got, want)
		}
	}
}
