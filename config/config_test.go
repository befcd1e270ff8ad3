package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestLoadOrCreateConfigMissingCreatesDefault(t *testing.T) {
	tmp := t.TempDir()

	configPath := filepath.Join(tmp, "config", "config.toml")
	old := resolveConfigPath
	resolveConfigPath = func() (string, error) { return configPath, nil }
	t.Cleanup(func() { resolveConfigPath = old })

	// Ensure missing
	if _, err := os.Stat(configPath); err == nil {
		t.Fatalf("expected config file to be missing")
	}

	created, err := LoadOrCreateConfig()
	if err != nil {
		t.Fatalf("LoadOrCreateConfig() error: %v", err)
	}
	if !created {
		t.Fatalf("LoadOrCreateConfig() created=false, want true")
	}

	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}

	var got Config
	if _, err := toml.DecodeFile(configPath, &got); err != nil {
		t.Fatalf("decode created config: %v", err)
	}
	if got.Server.Host != "127.0.0.1" {
		t.Fatalf("default server host = %q, want %q", got.Server.Host, "127.0.0.1")
	}
	if got.Server.Port != 8888 {
		t.Fatalf("default server port = %d, want %d", got.Server.Port, 8888)
	}
	if got.Clip.MinDurationSec != 30 || got.Clip.MaxDurationSec != 90 {
		t.Fatalf("default clip bounds = [%.0f, %.0f], want [30, 90]", got.Clip.MinDurationSec, got.Clip.MaxDurationSec)
	}
	if len(got.Selector.Keywords) == 0 {
		t.Fatalf("default selector keywords empty")
	}
}

func TestLoadOrCreateConfigReadsExisting(t *testing.T) {
	tmp := t.TempDir()

	configPath := filepath.Join(tmp, "config.toml")
	old := resolveConfigPath
	resolveConfigPath = func() (string, error) { return configPath, nil }
	t.Cleanup(func() { resolveConfigPath = old })

	content := "[clip]\nmin_duration_seconds = 15.0\nmax_duration_seconds = 45.0\ntarget_duration_seconds = 30.0\ncount = 3\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	created, err := LoadOrCreateConfig()
	if err != nil {
		t.Fatalf("LoadOrCreateConfig() error: %v", err)
	}
	if created {
		t.Fatalf("LoadOrCreateConfig() created=true, want false")
	}

	if Conf.Clip.MinDurationSec != 15 || Conf.Clip.Count != 3 {
		t.Fatalf("existing values not applied: %+v", Conf.Clip)
	}
	// Untouched sections keep defaults
	if Conf.Server.Port != 8888 {
		t.Fatalf("server port = %d, want default 8888", Conf.Server.Port)
	}
}

func TestSaveConfigCreatesParentDirs(t *testing.T) {
	tmp := t.TempDir()

	configPath := filepath.Join(tmp, "deep", "nest", "config.toml")
	old := resolveConfigPath
	resolveConfigPath = func() (string, error) { return configPath, nil }
	t.Cleanup(func() { resolveConfigPath = old })

	Conf = defaultConfig()
	Conf.Server.Port = 9999

	if err := SaveConfig(); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	if _, err := os.Stat(filepath.Dir(configPath)); err != nil {
		t.Fatalf("expected parent directories to exist: %v", err)
	}

	var got Config
	if _, err := toml.DecodeFile(configPath, &got); err != nil {
		t.Fatalf("decode saved config: %v", err)
	}
	if got.Server.Port != 9999 {
		t.Fatalf("saved server port = %d, want %d", got.Server.Port, 9999)
	}
}

func TestCheckConfig(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults pass", mutate: func(*Config) {}},
		{name: "min above max", mutate: func(c *Config) { c.Clip.MinDurationSec = 120 }, wantErr: true},
		{name: "zero count", mutate: func(c *Config) { c.Clip.Count = 0 }, wantErr: true},
		{name: "negative weight", mutate: func(c *Config) { c.Selector.EnergyWeight = -1 }, wantErr: true},
		{name: "merge fraction out of range", mutate: func(c *Config) { c.Selector.MergeOverlapFraction = 1.5 }, wantErr: true},
		{name: "bad subtitle position", mutate: func(c *Config) { c.Subtitle.Position = "diagonal" }, wantErr: true},
		{name: "bad proxy", mutate: func(c *Config) { c.App.Proxy = "://bad" }, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			Conf = defaultConfig()
			tc.mutate(&Conf)
			err := CheckConfig()
			if tc.wantErr && err == nil {
				t.Fatalf("CheckConfig() = nil, want error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("CheckConfig() error: %v", err)
			}
		})
	}
}
