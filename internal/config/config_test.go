package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// isolate points the config directory at a fresh temp dir and clears the
// GITBP_* environment.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{"GITBP_BACKEND", "GITBP_GIT", "GITBP_LOG", "GITBP_COLOR"} {
		t.Setenv(k, "")
	}
	return dir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, "git-bp", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Backend != "git" {
		t.Errorf("Default backend = %q, want %q", cfg.Backend, "git")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Default logLevel = %q, want %q", cfg.LogLevel, "warn")
	}
	if !slices.Equal(cfg.PickArgs, []string{"-x", "--signoff"}) {
		t.Errorf("Default pickArgs = %v", cfg.PickArgs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config invalid: %v", err)
	}
}

func TestConfigPath(t *testing.T) {
	dir := isolate(t)
	path, err := ConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "git-bp", "config.toml"); path != want {
		t.Errorf("ConfigPath = %q, want %q", path, want)
	}
}

func TestLoad_NoFile(t *testing.T) {
	isolate(t)
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Backend != "git" || cfg.Format != "list" {
		t.Errorf("Load without file = %+v, want defaults", cfg)
	}
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `
backend = "go-git"
ref = "origin/master"
pickArgs = ["-x"]
vimDir = "/tmp/vim"
`)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Backend != "go-git" {
		t.Errorf("Backend = %q, want go-git", cfg.Backend)
	}
	if cfg.Ref != "origin/master" {
		t.Errorf("Ref = %q", cfg.Ref)
	}
	if !slices.Equal(cfg.PickArgs, []string{"-x"}) {
		t.Errorf("PickArgs = %v", cfg.PickArgs)
	}
	if cfg.VimDir != "/tmp/vim" {
		t.Errorf("VimDir = %q", cfg.VimDir)
	}
	if cfg.GitBinary != "git" {
		t.Errorf("GitBinary = %q, want default kept", cfg.GitBinary)
	}
}

func TestLoad_MixedCaseFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `
backend = "Go-Git"
logLevel = "DEBUG"
color = "ALWAYS"
format = "Markdown"
`)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	tests := []struct {
		field, got, want string
	}{
		{"Backend", cfg.Backend, "go-git"},
		{"LogLevel", cfg.LogLevel, "debug"},
		{"Color", cfg.Color, "always"},
		{"Format", cfg.Format, "markdown"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.field, tt.got, tt.want)
		}
	}
}

func TestLoad_EmptyPickArgs(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "pickArgs = []\n")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.PickArgs) != 0 {
		t.Errorf("PickArgs = %v, want empty", cfg.PickArgs)
	}
}

func TestLoad_BadFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "backend = \n")

	_, err := Load(nil)
	if err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("Load error = %v, want parse error", err)
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "backend = \"go-git\"\nlogLevel = \"info\"\ncolor = \"never\"\n")
	t.Setenv("GITBP_LOG", "DEBUG")
	t.Setenv("GITBP_COLOR", "always")
	t.Setenv("GITBP_GIT", "/opt/git/bin/git")

	cfg, err := Load(map[string]string{"color": "auto", "backend": ""})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	tests := []struct {
		name, got, want string
	}{
		{"backend from file, empty override ignored", cfg.Backend, "go-git"},
		{"logLevel from env, lowercased", cfg.LogLevel, "debug"},
		{"color from override", cfg.Color, "auto"},
		{"gitBinary from env", cfg.GitBinary, "/opt/git/bin/git"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		wantErr   string
	}{
		{"bad backend", map[string]string{"backend": "hg"}, "invalid backend"},
		{"bad color", map[string]string{"color": "sometimes"}, "invalid color"},
		{"bad format", map[string]string{"format": "sarif"}, "invalid format"},
		{"unknown key", map[string]string{"provider": "x"}, "unknown config key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := Load(tt.overrides)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestSetField(t *testing.T) {
	cfg := Default()
	tests := []struct {
		key, value string
		check      func() bool
	}{
		{"backend", "go-git", func() bool { return cfg.Backend == "go-git" }},
		{"gitBinary", "/usr/bin/git", func() bool { return cfg.GitBinary == "/usr/bin/git" }},
		{"ref", "linux/master", func() bool { return cfg.Ref == "linux/master" }},
		{"logLevel", "INFO", func() bool { return cfg.LogLevel == "info" }},
		{"pickArgs", " -x   -s ", func() bool { return slices.Equal(cfg.PickArgs, []string{"-x", "-s"}) }},
		{"vimDir", "~/.vim", func() bool { return cfg.VimDir == "~/.vim" }},
		{"format", "json", func() bool { return cfg.Format == "json" }},
	}
	for _, tt := range tests {
		if err := SetField(&cfg, tt.key, tt.value); err != nil {
			t.Errorf("SetField(%q) error: %v", tt.key, err)
			continue
		}
		if !tt.check() {
			t.Errorf("SetField(%q, %q) not applied: %+v", tt.key, tt.value, cfg)
		}
	}

	if err := SetField(&cfg, "nope", "x"); err == nil {
		t.Error("SetField with unknown key should fail")
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.Ref = "origin/main"
	cfg.PickArgs = []string{"-x"}

	if err := Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if got.Ref != "origin/main" || !slices.Equal(got.PickArgs, []string{"-x"}) || got.Backend != "git" {
		t.Errorf("LoadFile = %+v", got)
	}
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, key := range []string{"backend", "gitBinary", "pickArgs", "--signoff"} {
		if !strings.Contains(out, key) {
			t.Errorf("missing %q in:\n%s", key, out)
		}
	}
	if strings.Contains(out, "vimDir") {
		t.Errorf("empty vimDir should be omitted:\n%s", out)
	}
}

func TestValidateField(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    bool
	}{
		{"backend", "go-git", false},
		{"backend", "svn", true},
		{"logLevel", "INFO", false},
		{"color", "never", false},
		{"format", "markdown", false},
		{"format", "xml", true},
		{"ref", "anything", false},
	}
	for _, tt := range tests {
		if err := ValidateField(tt.key, tt.value); (err != nil) != tt.wantErr {
			t.Errorf("ValidateField(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
		}
	}
}
