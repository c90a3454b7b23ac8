package core

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/go-github/v73/github"
)

var (
	// ErrIgnoredEvent is returned for payloads whose action does not trigger a job,
	// including payloads that are not JSON at all.
	ErrIgnoredEvent = errors.New("event action does not trigger a job")
	// ErrMalformedEvent is returned when the action triggers a job but the
	// payload lacks the fields needed to build one.
	ErrMalformedEvent = errors.New("pull request event is malformed")
)

// Pull request actions that trigger a job.
const (
	ActionOpened      = "opened"
	ActionSynchronize = "synchronize"
)

// IsTriggeringAction reports whether a pull request action should produce a job.
// Comparison is exact; "Opened" does not match.
func IsTriggeringAction(action string) bool {
	return action == ActionOpened || action == ActionSynchronize
}

// JobFromPullRequestEvent maps a raw pull_request webhook payload onto a Job.
// It acts as an anti-corruption layer between GitHub's event shape and the
// queue: unrecognized actions yield ErrIgnoredEvent, recognized actions with
// missing or invalid fields yield an error wrapping ErrMalformedEvent.
func JobFromPullRequestEvent(payload []byte) (*Job, error) {
	var head struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(payload, &head); err != nil || !IsTriggeringAction(head.Action) {
		return nil, ErrIgnoredEvent
	}

	var event github.PullRequestEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	if event.GetInstallation().GetID() <= 0 {
		return nil, fmt.Errorf("%w: installation ID is missing", ErrMalformedEvent)
	}

	repo := event.GetRepo()
	if repo.GetOwner().GetLogin() == "" || repo.GetName() == "" {
		return nil, fmt.Errorf("%w: repository or owner information is missing", ErrMalformedEvent)
	}

	if event.GetNumber() <= 0 {
		return nil, fmt.Errorf("%w: invalid pull request number: %d", ErrMalformedEvent, event.GetNumber())
	}

	return &Job{
		InstallationID: event.GetInstallation().GetID(),
		Owner:          repo.GetOwner().GetLogin(),
		PRNumber:       event.GetNumber(),
		Repo:           repo.GetName(),
	}, nil
}
