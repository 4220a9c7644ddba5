// ABOUTME: Environment variable overrides and ${VAR} expansion in config string fields
// ABOUTME: TELEOP_* variables override file settings; unset ${VAR} references become empty

package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// Environment variables read by FromEnv.
const (
	EnvScaleLinear  = "TELEOP_SCALE_LINEAR"
	EnvScaleAngular = "TELEOP_SCALE_ANGULAR"
	EnvTopic        = "TELEOP_TOPIC"
	EnvBridgeURL    = "TELEOP_BRIDGE_URL"
	EnvSink         = "TELEOP_SINK"
	EnvDecode       = "TELEOP_DECODE"
	EnvLogLevel     = "TELEOP_LOG_LEVEL"
)

// FromEnv builds override Settings from TELEOP_* variables using lookup
// (normally os.LookupEnv).
func FromEnv(lookup func(string) (string, bool)) (*Settings, error) {
	s := &Settings{}

	for name, dst := range map[string]*float64{
		EnvScaleLinear:  &s.ScaleLinear,
		EnvScaleAngular: &s.ScaleAngular,
	} {
		v, ok := lookup(name)
		if !ok || v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		*dst = f
	}

	for name, dst := range map[string]*string{
		EnvTopic:     &s.Topic,
		EnvBridgeURL: &s.BridgeURL,
		EnvSink:      &s.Sink,
		EnvDecode:    &s.Decode,
		EnvLogLevel:  &s.LogLevel,
	} {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	return s, nil
}

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// ResolveEnvVars expands ${VAR} patterns in string fields of Settings.
func ResolveEnvVars(s *Settings) {
	s.Topic = expandEnv(s.Topic)
	s.BridgeURL = expandEnv(s.BridgeURL)
	s.Sink = expandEnv(s.Sink)
	s.Decode = expandEnv(s.Decode)
	s.LogLevel = expandEnv(s.LogLevel)
}

// expandEnv replaces ${VAR} with os.Getenv(VAR). Unset vars become "".
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
