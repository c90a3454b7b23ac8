package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/sevigo/livebundle-github/internal/config"
)

// ClientFactory returns a client authenticated as the given app installation.
type ClientFactory func(ctx context.Context, installationID int64) (Client, error)

// NewInstallationClientFactory loads the App private key once and returns a
// factory that mints installation tokens on demand.
func NewInstallationClientFactory(cfg *config.Config, logger *slog.Logger) (ClientFactory, error) {
	privateKey, err := os.ReadFile(cfg.GitHub.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key from %s: %w", cfg.GitHub.PrivateKeyPath, err)
	}

	// The apps transport authenticates as the App itself (JWT) and is only used
	// to exchange for installation tokens.
	appTransport, err := ghinstallation.NewAppsTransport(http.DefaultTransport, cfg.GitHub.AppID, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub App transport: %w", err)
	}
	appClient := github.NewClient(&http.Client{Transport: appTransport})

	return func(ctx context.Context, installationID int64) (Client, error) {
		return createInstallationClient(ctx, appClient, installationID, logger)
	}, nil
}

func createInstallationClient(ctx context.Context, appClient *github.Client, installationID int64, logger *slog.Logger) (Client, error) {
	logger.Debug("creating GitHub installation client", "installation_id", installationID)

	token, _, err := appClient.Apps.CreateInstallationToken(ctx, installationID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create installation token for installation ID %d: %w", installationID, err)
	}
	if token.GetToken() == "" {
		return nil, fmt.Errorf("received an empty installation token")
	}
	logger.Debug("created installation token", "installation_id", installationID, "expires_at", token.GetExpiresAt())

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token.GetToken()})
	return NewGitHubClient(github.NewClient(oauth2.NewClient(ctx, ts)), logger), nil
}
