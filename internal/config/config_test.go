// ABOUTME: Tests for settings loading, merging, env overrides, and validation
// ABOUTME: Uses temp directories and a fake HOME for isolated file-based tests

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// isolate points HOME at an empty directory and clears TELEOP_* variables.
func isolate(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, name := range []string{EnvScaleLinear, EnvScaleAngular, EnvTopic, EnvBridgeURL, EnvSink, EnvDecode, EnvLogLevel} {
		t.Setenv(name, "")
	}
	return home
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := &Settings{ScaleLinear: 1, ScaleAngular: 1, Topic: "/cmd_vel"}
	over := &Settings{ScaleLinear: 2.5}

	result := merge(base, over)

	if result.ScaleLinear != 2.5 {
		t.Errorf("ScaleLinear = %v, want 2.5", result.ScaleLinear)
	}
	if result.ScaleAngular != 1 {
		t.Errorf("ScaleAngular = %v, want 1", result.ScaleAngular)
	}
	if result.Topic != "/cmd_vel" {
		t.Errorf("Topic = %q, want /cmd_vel", result.Topic)
	}
	if base.ScaleLinear != 1 {
		t.Error("merge mutated base")
	}
}

func TestMerge_Nil(t *testing.T) {
	t.Parallel()

	if merge(nil, nil) == nil {
		t.Fatal("merge(nil, nil) should return non-nil")
	}
}

func TestDefaults_AreValid(t *testing.T) {
	t.Parallel()

	d := Defaults()
	if err := d.Validate(); err != nil {
		t.Fatalf("Defaults().Validate() = %v", err)
	}
	if d.ScaleLinear != 1.0 || d.ScaleAngular != 1.0 {
		t.Errorf("default scales = (%v, %v), want (1, 1)", d.ScaleLinear, d.ScaleAngular)
	}
	if d.Topic != "/cmd_vel" {
		t.Errorf("default topic = %q", d.Topic)
	}
	if d.QueueSize != 1 {
		t.Errorf("default queue size = %d, want 1", d.QueueSize)
	}
}

func TestLoadFile_NotExist(t *testing.T) {
	t.Parallel()

	s, err := loadFile("/nonexistent/path/config.yaml")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not exist error, got %v", err)
	}
	if s == nil {
		t.Error("expected non-nil default settings")
	}
}

func TestLoadFile_ValidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "scale_linear: 0.5\nscale_angular: 2\ntopic: /quad/cmd_vel\nqueue_size: 3\n")

	s, err := loadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.ScaleLinear != 0.5 || s.ScaleAngular != 2 {
		t.Errorf("scales = (%v, %v), want (0.5, 2)", s.ScaleLinear, s.ScaleAngular)
	}
	if s.Topic != "/quad/cmd_vel" {
		t.Errorf("Topic = %q", s.Topic)
	}
	if s.QueueSize != 3 {
		t.Errorf("QueueSize = %d, want 3", s.QueueSize)
	}
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "scale_linear: [not, a, number]\n")

	if _, err := loadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadAll_Precedence(t *testing.T) {
	home := isolate(t)
	project := t.TempDir()

	writeFile(t, filepath.Join(home, ".teleop", "config.yaml"), "scale_linear: 2\nscale_angular: 2\ntopic: /global\n")
	writeFile(t, filepath.Join(project, ".teleop", "config.yaml"), "scale_angular: 3\n")
	t.Setenv(EnvTopic, "/from-env")

	s, err := LoadAll(project, "", &Settings{Sink: SinkStdout})
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	if s.ScaleLinear != 2 {
		t.Errorf("ScaleLinear = %v, want 2 (global)", s.ScaleLinear)
	}
	if s.ScaleAngular != 3 {
		t.Errorf("ScaleAngular = %v, want 3 (project)", s.ScaleAngular)
	}
	if s.Topic != "/from-env" {
		t.Errorf("Topic = %q, want /from-env", s.Topic)
	}
	if s.Sink != SinkStdout {
		t.Errorf("Sink = %q, want stdout (cli)", s.Sink)
	}
}

func TestLoadAll_NoFilesUsesDefaults(t *testing.T) {
	isolate(t)

	s, err := LoadAll(t.TempDir(), "", nil)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if *s != *Defaults() {
		t.Errorf("LoadAll() = %+v, want defaults %+v", *s, *Defaults())
	}
}

func TestLoadAll_ExplicitPathMustExist(t *testing.T) {
	isolate(t)

	_, err := LoadAll(t.TempDir(), filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("LoadAll() error = %v, want not exist", err)
	}
}

func TestLoadAll_ExplicitPathSkipsDiscovery(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".teleop", "config.yaml"), "scale_linear: 9\n")

	path := filepath.Join(t.TempDir(), "teleop.yaml")
	writeFile(t, path, "scale_angular: 0.5\n")

	s, err := LoadAll(t.TempDir(), path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.ScaleLinear != 1 {
		t.Errorf("ScaleLinear = %v, want 1 (global file ignored)", s.ScaleLinear)
	}
	if s.ScaleAngular != 0.5 {
		t.Errorf("ScaleAngular = %v, want 0.5", s.ScaleAngular)
	}
}

func TestLoadAll_InvalidResult(t *testing.T) {
	isolate(t)
	t.Setenv(EnvScaleLinear, "-1")

	_, err := LoadAll(t.TempDir(), "", nil)
	if err == nil || !strings.Contains(err.Error(), "scale") {
		t.Fatalf("LoadAll() error = %v, want scale validation error", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Settings) {}},
		{name: "stdout sink ignores url", mutate: func(s *Settings) { s.Sink = SinkStdout; s.BridgeURL = "::" }},
		{name: "wss bridge", mutate: func(s *Settings) { s.BridgeURL = "wss://robot.local:9090" }},
		{name: "zero linear", mutate: func(s *Settings) { s.ScaleLinear = 0 }, wantErr: "linear scale"},
		{name: "negative angular", mutate: func(s *Settings) { s.ScaleAngular = -2 }, wantErr: "angular scale"},
		{name: "unknown sink", mutate: func(s *Settings) { s.Sink = "kafka" }, wantErr: "unknown sink"},
		{name: "http bridge", mutate: func(s *Settings) { s.BridgeURL = "http://localhost:9090" }, wantErr: "ws or wss"},
		{name: "unknown decode", mutate: func(s *Settings) { s.Decode = "vt52" }, wantErr: "decode mode"},
		{name: "empty topic", mutate: func(s *Settings) { s.Topic = "" }, wantErr: "topic"},
		{name: "zero queue", mutate: func(s *Settings) { s.QueueSize = 0 }, wantErr: "queue_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := Defaults()
			tt.mutate(s)

			err := s.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSettings_ScaleAndDecodeMode(t *testing.T) {
	t.Parallel()

	s := &Settings{ScaleLinear: 2, ScaleAngular: 0.5, Decode: "sequence"}
	if got := s.Scale(); got.Linear != 2 || got.Angular != 0.5 {
		t.Errorf("Scale() = %+v", got)
	}
	if got := s.DecodeMode().String(); got != "sequence" {
		t.Errorf("DecodeMode() = %q, want sequence", got)
	}
}
