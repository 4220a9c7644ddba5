// ABOUTME: Teleop settings: defaults, global + project YAML files, env vars, CLI overrides
// ABOUTME: Later layers override earlier ones field by field; the result is validated once

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/quadrotor-teleop/internal/teleop"
	"github.com/mauromedda/quadrotor-teleop/pkg/key"
)

// Sink names accepted in Settings.Sink.
const (
	SinkBridge = "bridge"
	SinkStdout = "stdout"
)

// Defaults for settings that are not configured anywhere.
const (
	DefaultTopic     = "/cmd_vel"
	DefaultBridgeURL = "ws://localhost:9090"
	DefaultQueueSize = 1
)

// Settings holds the merged configuration.
type Settings struct {
	ScaleLinear  float64 `yaml:"scale_linear,omitempty"`
	ScaleAngular float64 `yaml:"scale_angular,omitempty"`
	Topic        string  `yaml:"topic,omitempty"`
	BridgeURL    string  `yaml:"bridge_url,omitempty"`
	Sink         string  `yaml:"sink,omitempty"`
	Decode       string  `yaml:"decode,omitempty"`
	QueueSize    int     `yaml:"queue_size,omitempty"`
	LogLevel     string  `yaml:"log_level,omitempty"`
}

// Defaults returns the built-in settings.
func Defaults() *Settings {
	return &Settings{
		ScaleLinear:  teleop.DefaultScale.Linear,
		ScaleAngular: teleop.DefaultScale.Angular,
		Topic:        DefaultTopic,
		BridgeURL:    DefaultBridgeURL,
		Sink:         SinkBridge,
		Decode:       key.ModeByte.String(),
		QueueSize:    DefaultQueueSize,
		LogLevel:     "info",
	}
}

// LoadAll builds the effective settings. When explicitPath is set only that
// file is read and it must exist; otherwise the global and project files
// are read if present. Environment variables come next and cli last.
func LoadAll(projectRoot, explicitPath string, cli *Settings) (*Settings, error) {
	s := Defaults()

	if explicitPath != "" {
		f, err := loadFile(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", explicitPath, err)
		}
		s = merge(s, f)
	} else {
		global, err := loadFile(GlobalConfigFile())
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading global config: %w", err)
		}
		project, err := loadFile(ProjectConfigFile(projectRoot))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading project config: %w", err)
		}
		s = merge(merge(s, global), project)
	}

	env, err := FromEnv(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	s = merge(merge(s, env), cli)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadFile reads Settings from a YAML file and expands ${VAR} references.
// Returns zero Settings with the os error if the file cannot be read.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	ResolveEnvVars(&s)
	return &s, nil
}

// merge overlays non-zero fields of over onto base.
func merge(base, over *Settings) *Settings {
	if base == nil {
		base = &Settings{}
	}
	if over == nil {
		return base
	}

	result := *base

	if over.ScaleLinear != 0 {
		result.ScaleLinear = over.ScaleLinear
	}
	if over.ScaleAngular != 0 {
		result.ScaleAngular = over.ScaleAngular
	}
	if over.Topic != "" {
		result.Topic = over.Topic
	}
	if over.BridgeURL != "" {
		result.BridgeURL = over.BridgeURL
	}
	if over.Sink != "" {
		result.Sink = over.Sink
	}
	if over.Decode != "" {
		result.Decode = over.Decode
	}
	if over.QueueSize != 0 {
		result.QueueSize = over.QueueSize
	}
	if over.LogLevel != "" {
		result.LogLevel = over.LogLevel
	}

	return &result
}

// Validate reports the first invalid setting.
func (s *Settings) Validate() error {
	if err := s.Scale().Validate(); err != nil {
		return fmt.Errorf("invalid scale: %w", err)
	}
	if _, err := key.ParseMode(s.Decode); err != nil {
		return err
	}
	if s.Topic == "" {
		return errors.New("topic must not be empty")
	}
	if s.QueueSize < 1 {
		return fmt.Errorf("queue_size must be at least 1, got %d", s.QueueSize)
	}

	switch s.Sink {
	case SinkStdout:
	case SinkBridge:
		u, err := url.Parse(s.BridgeURL)
		if err != nil {
			return fmt.Errorf("invalid bridge_url: %w", err)
		}
		if u.Scheme != "ws" && u.Scheme != "wss" {
			return fmt.Errorf("bridge_url must use ws or wss, got %q", s.BridgeURL)
		}
	default:
		return fmt.Errorf("unknown sink %q (want %s or %s)", s.Sink, SinkBridge, SinkStdout)
	}
	return nil
}

// Scale returns the configured velocity scale.
func (s *Settings) Scale() teleop.Scale {
	return teleop.Scale{Linear: s.ScaleLinear, Angular: s.ScaleAngular}
}

// DecodeMode returns the parsed decode mode; Validate guarantees it is known.
func (s *Settings) DecodeMode() key.Mode {
	m, _ := key.ParseMode(s.Decode)
	return m
}
