// Package gitutil parses references to pull requests.
package gitutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	prURLRegex   = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/pull/(\d+)$`)
	prShortRegex = regexp.MustCompile(`^([^/\s]+)/([^/#\s]+)#(\d+)$`)
)

// PullRequestRef identifies a pull request by repository and number.
type PullRequestRef struct {
	Owner  string
	Repo   string
	Number int
}

// ParsePullRequestRef accepts either a pull request URL
// (https://github.com/{owner}/{repo}/pull/{number}) or the short form
// {owner}/{repo}#{number}.
func ParsePullRequestRef(ref string) (PullRequestRef, error) {
	ref = strings.TrimSuffix(strings.TrimSpace(ref), "/")

	matches := prURLRegex.FindStringSubmatch(ref)
	if matches == nil {
		matches = prShortRegex.FindStringSubmatch(ref)
	}
	if len(matches) != 4 {
		return PullRequestRef{}, fmt.Errorf("invalid pull request reference: %s", ref)
	}

	number, err := strconv.Atoi(matches[3])
	if err != nil || number <= 0 {
		return PullRequestRef{}, fmt.Errorf("invalid PR number '%s'", matches[3])
	}

	return PullRequestRef{Owner: matches[1], Repo: matches[2], Number: number}, nil
}
