// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --config, scale and transport overrides, --decode, --echo, --verbose, --version

package main

import (
	"flag"
	"os"

	"github.com/mauromedda/quadrotor-teleop/internal/config"
)

type cliArgs struct {
	configPath   string
	scaleLinear  float64
	scaleAngular float64
	topic        string
	bridgeURL    string
	sink         string
	decode       string
	logLevel     string
	echo         bool
	verbose      bool
	version      bool
}

func parseFlags() cliArgs {
	// flag.CommandLine exits on error, so the error is always nil here.
	a, _ := parseArgs(flag.CommandLine, os.Args[1:])
	return a
}

// parseArgs registers the flags on fs and parses args.
func parseArgs(fs *flag.FlagSet, args []string) (cliArgs, error) {
	var a cliArgs

	fs.StringVar(&a.configPath, "config", "", "Config file (default: ~/.teleop/config.yaml and ./.teleop/config.yaml)")
	fs.Float64Var(&a.scaleLinear, "scale-linear", 0, "Linear velocity scale (scale_linear, default 1.0)")
	fs.Float64Var(&a.scaleAngular, "scale-angular", 0, "Angular scale (scale_angular, default 1.0; arrows use the linear scale)")
	fs.StringVar(&a.topic, "topic", "", "Command topic (default /cmd_vel)")
	fs.StringVar(&a.bridgeURL, "bridge-url", "", "rosbridge websocket URL (default ws://localhost:9090)")
	fs.StringVar(&a.sink, "sink", "", "Output sink: bridge or stdout")
	fs.StringVar(&a.decode, "decode", "", "Key decoding: byte (arrow keys by final byte) or sequence")
	fs.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVar(&a.echo, "echo", false, "Print the hex value of every byte read")
	fs.BoolVar(&a.verbose, "verbose", false, "Shorthand for --log-level debug")
	fs.BoolVar(&a.version, "version", false, "Show version and exit")

	err := fs.Parse(args)
	return a, err
}

// buildCLIOverrides maps CLI flags to a Settings struct for LoadAll.
func buildCLIOverrides(a cliArgs) *config.Settings {
	s := &config.Settings{
		ScaleLinear:  a.scaleLinear,
		ScaleAngular: a.scaleAngular,
		Topic:        a.topic,
		BridgeURL:    a.bridgeURL,
		Sink:         a.sink,
		Decode:       a.decode,
		LogLevel:     a.logLevel,
	}
	if a.verbose {
		s.LogLevel = "debug"
	}
	return s
}
