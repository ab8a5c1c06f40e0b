package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Project ProjectConfig `yaml:"project"`
	Doxygen DoxygenConfig `yaml:"doxygen"`
	Publish PublishConfig `yaml:"publish"`
	Retry   RetryConfig   `yaml:"retry,omitempty"`
	Watch   WatchConfig   `yaml:"watch,omitempty"`
	History HistoryConfig `yaml:"history,omitempty"`
	Notify  NotifyConfig  `yaml:"notify,omitempty"`
}

// ProjectConfig identifies the source tree and its metadata inputs.
type ProjectConfig struct {
	Name    string `yaml:"name,omitempty"`    // default: first README heading
	Version string `yaml:"version,omitempty"` // default: extracted from CMakeLists.txt
	Source  string `yaml:"source"`            // required: annotated source tree
	Readme  string `yaml:"readme,omitempty"`  // default: README.md under source
	CMake   string `yaml:"cmake,omitempty"`   // default: CMakeLists.txt under source
}

// DoxygenConfig controls the external generator invocation.
type DoxygenConfig struct {
	Binary   string `yaml:"binary,omitempty"`   // default "doxygen"
	Doxyfile string `yaml:"doxyfile,omitempty"` // default Doxyfile under source
	Output   string `yaml:"output,omitempty"`   // default ./site
	Clean    *bool  `yaml:"clean,omitempty"`    // default true
	HTMLDir  string `yaml:"html_dir,omitempty"` // default "html"
}

// CleanOutput reports whether the output directory is removed before generation.
func (d DoxygenConfig) CleanOutput() bool { return d.Clean == nil || *d.Clean }

// PublishConfig names the git publish target.
type PublishConfig struct {
	URL            string      `yaml:"url"`
	Branch         string      `yaml:"branch,omitempty"`      // default "gh-pages"
	RemoteName     string      `yaml:"remote_name,omitempty"` // default "origin"
	CommitterName  string      `yaml:"committer_name,omitempty"`
	CommitterEmail string      `yaml:"committer_email,omitempty"`
	KeepHistory    *bool       `yaml:"keep_history,omitempty"` // default true
	LatestAlias    *bool       `yaml:"latest_alias,omitempty"` // default true
	Auth           *AuthConfig `yaml:"auth,omitempty"`
}

// KeepsHistory reports whether existing branch history is preserved across publishes.
func (p PublishConfig) KeepsHistory() bool { return p.KeepHistory == nil || *p.KeepHistory }

// WritesLatestAlias reports whether labeled publishes also refresh the latest/ copy.
func (p PublishConfig) WritesLatestAlias() bool { return p.LatestAlias == nil || *p.LatestAlias }

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Interval string   `yaml:"interval,omitempty"` // periodic rebuild; empty or 0 disables
	Debounce string   `yaml:"debounce,omitempty"` // default 2s
	Listen   string   `yaml:"listen,omitempty"`   // default :8080
	Ignore   []string `yaml:"ignore,omitempty"`   // glob patterns relative to source
}

// HistoryConfig controls the local run history store.
type HistoryConfig struct {
	Path    string `yaml:"path,omitempty"` // default .docpub/history.db
	Enabled *bool  `yaml:"enabled,omitempty"`
}

// IsEnabled reports whether runs are recorded to the history store.
func (h HistoryConfig) IsEnabled() bool { return h.Enabled == nil || *h.Enabled }

// NotifyConfig controls the optional NATS publish notification.
type NotifyConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	URL     string `yaml:"url,omitempty"`
	Subject string `yaml:"subject,omitempty"` // default docpub.publish
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults fills unset fields with their documented defaults.
func (c *Config) applyDefaults() {
	if c.Project.Readme == "" && c.Project.Source != "" {
		c.Project.Readme = filepath.Join(c.Project.Source, "README.md")
	}
	if c.Project.CMake == "" && c.Project.Source != "" {
		c.Project.CMake = filepath.Join(c.Project.Source, "CMakeLists.txt")
	}
	if c.Doxygen.Binary == "" {
		c.Doxygen.Binary = "doxygen"
	}
	if c.Doxygen.Doxyfile == "" && c.Project.Source != "" {
		c.Doxygen.Doxyfile = filepath.Join(c.Project.Source, "Doxyfile")
	}
	if c.Doxygen.Output == "" {
		c.Doxygen.Output = "./site"
	}
	if c.Doxygen.HTMLDir == "" {
		c.Doxygen.HTMLDir = "html"
	}
	if c.Publish.Branch == "" {
		c.Publish.Branch = "gh-pages"
	}
	if c.Publish.RemoteName == "" {
		c.Publish.RemoteName = "origin"
	}
	if c.Publish.CommitterName == "" {
		c.Publish.CommitterName = "docpub"
	}
	if c.Publish.CommitterEmail == "" {
		c.Publish.CommitterEmail = "docpub@localhost"
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = "2s"
	}
	if c.Watch.Listen == "" {
		c.Watch.Listen = ":8080"
	}
	if c.History.Path == "" {
		c.History.Path = filepath.Join(".docpub", "history.db")
	}
	if c.Notify.Subject == "" {
		c.Notify.Subject = "docpub.publish"
	}
	c.Retry.applyDefaults()
}
