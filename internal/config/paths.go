package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathsConfig contains file system paths configuration. Relative directories
// resolve against the executable's directory so deployments stay
// self-contained.
type PathsConfig struct {
	ExecutableDir string `yaml:"executable_dir" envconfig:"EXECUTABLE_DIR"`
	DataDir       string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir    string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
	LogsDir       string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

func (p *PathsConfig) resolve() error {
	if p.ExecutableDir == "" {
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to locate executable: %w", err)
		}
		p.ExecutableDir = filepath.Dir(exe)
	}
	p.DataDir = p.resolveDir(p.DataDir)
	p.ReportsDir = p.resolveDir(p.ReportsDir)
	p.LogsDir = p.resolveDir(p.LogsDir)
	return nil
}

func (p *PathsConfig) resolveDir(dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(p.ExecutableDir, dir)
}

// EnsureDirs creates the configured directories if absent.
func (p *PathsConfig) EnsureDirs() error {
	for _, dir := range []string{p.DataDir, p.ReportsDir, p.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ReportPath joins a report file name onto the reports directory.
func (p *PathsConfig) ReportPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.ReportsDir, name)
}

// DataPath joins an input file name onto the data directory.
func (p *PathsConfig) DataPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.DataDir, name)
}
