package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	boolTrue := true
	exampleConfig := Config{
		Project: ProjectConfig{
			Source: ".",
			// name and version are resolved from README.md / CMakeLists.txt
			// when omitted
		},
		Doxygen: DoxygenConfig{
			Doxyfile: "Doxyfile",
			Output:   "./site",
		},
		Publish: PublishConfig{
			URL:    "https://github.com/example/project.git",
			Branch: "gh-pages",
			Auth: &AuthConfig{
				Type:  AuthTypeToken,
				Token: "${GIT_TOKEN}",
			},
			LatestAlias: &boolTrue,
		},
		Notify: NotifyConfig{
			Enabled: false,
			URL:     "nats://localhost:4222",
			Subject: "docpub.publish",
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
