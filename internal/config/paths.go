// ABOUTME: Standard filesystem paths for teleop configuration
// ABOUTME: Resolves ~/.teleop/ for global and .teleop/ for project-local config files

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".teleop"
	projectDirName = ".teleop"
	configFileName = "config.yaml"
)

// GlobalDir returns the user-global config directory (~/.teleop/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.teleop/ in cwd).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), configFileName)
}

// ProjectConfigFile returns the path to the project-local config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), configFileName)
}
