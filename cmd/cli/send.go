package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/go-github/v73/github"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/livebundle-github/internal/gitutil"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

var sendOpts struct {
	action         string
	installationID int64
	owner          string
	repo           string
	number         int
}

var sendCmd = &cobra.Command{
	Use:   "send [pr-url]",
	Short: "Send a synthetic pull_request webhook to the receiver",
	Long: `Send a synthetic pull_request webhook to the receiver.

Examples:
  livebundle-cli send --owner foo --repo bar --number 42 --installation 123456
  livebundle-cli send https://github.com/foo/bar/pull/42 --installation 123456
  livebundle-cli send foo/bar#42 --action synchronize --installation 123456
  livebundle-cli send --action closed --owner foo --repo bar --number 42 --installation 123456`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			ref, err := gitutil.ParsePullRequestRef(args[0])
			if err != nil {
				return err
			}
			sendOpts.owner, sendOpts.repo, sendOpts.number = ref.Owner, ref.Repo, ref.Number
		}

		payload, err := buildPullRequestPayload(sendOpts.action, sendOpts.installationID, sendOpts.owner, sendOpts.repo, sendOpts.number)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		url := viper.GetString("SERVER_URL")
		status, body, err := sendWebhook(ctx, http.DefaultClient, url, payload)
		if err != nil {
			errorColor.Printf("✗ delivery to %s failed: %v\n", url, err)
			return err
		}

		if status != http.StatusOK {
			errorColor.Printf("✗ %s answered %d\n", url, status)
			return fmt.Errorf("unexpected status %d", status)
		}
		successColor.Printf("✓ %s delivered to %s\n", sendOpts.action, url)
		dimColor.Println(strings.TrimSpace(body))
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	sendCmd.Flags().StringVarP(&sendOpts.action, "action", "a", "opened", "Pull request action")
	sendCmd.Flags().Int64VarP(&sendOpts.installationID, "installation", "i", 0, "GitHub App installation ID")
	sendCmd.Flags().StringVarP(&sendOpts.owner, "owner", "o", "", "Repository owner login")
	sendCmd.Flags().StringVarP(&sendOpts.repo, "repo", "r", "", "Repository name")
	sendCmd.Flags().IntVarP(&sendOpts.number, "number", "n", 0, "Pull request number")
	rootCmd.AddCommand(sendCmd)
}

// buildPullRequestPayload renders the subset of a pull_request event the receiver reads.
func buildPullRequestPayload(action string, installationID int64, owner, repo string, number int) ([]byte, error) {
	event := github.PullRequestEvent{
		Action: github.Ptr(action),
		Number: github.Ptr(number),
		Installation: &github.Installation{
			ID: github.Ptr(installationID),
		},
		Repo: &github.Repository{
			Name:  github.Ptr(repo),
			Owner: &github.User{Login: github.Ptr(owner)},
		},
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}
	return payload, nil
}

// sendWebhook posts payload to the receiver root with GitHub's delivery headers.
func sendWebhook(ctx context.Context, client *http.Client, baseURL string, payload []byte) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(baseURL, "/")+"/", bytes.NewReader(payload))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", "pull_request")
	req.Header.Set("X-GitHub-Delivery", uuid.NewString())

	resp, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, string(body), nil
}
