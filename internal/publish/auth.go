package publish

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"git.home.luguber.info/inful/docpub/internal/config"
)

// authMethod returns a go-git AuthMethod for the given AuthConfig.
// Nil config or type "none" yields no authentication.
func authMethod(authCfg *config.AuthConfig) (transport.AuthMethod, error) {
	if authCfg.IsZero() {
		return nil, nil
	}
	switch authCfg.Type {
	case config.AuthTypeToken:
		if authCfg.Token == "" {
			return nil, fmt.Errorf("token authentication requires a token")
		}
		username := authCfg.Username
		if username == "" {
			username = "git"
		}
		return &githttp.BasicAuth{Username: username, Password: authCfg.Token}, nil
	case config.AuthTypeBasic:
		if authCfg.Username == "" || authCfg.Password == "" {
			return nil, fmt.Errorf("basic authentication requires username and password")
		}
		return &githttp.BasicAuth{Username: authCfg.Username, Password: authCfg.Password}, nil
	case config.AuthTypeSSH:
		if authCfg.KeyPath == "" {
			return nil, fmt.Errorf("ssh authentication requires a key path")
		}
		keys, err := ssh.NewPublicKeysFromFile("git", authCfg.KeyPath, authCfg.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to load ssh key: %w", err)
		}
		return keys, nil
	default:
		return nil, fmt.Errorf("unsupported auth type: %s", authCfg.Type)
	}
}
