package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/go-github/v66/github"
)

// Attribute names one half of an identity.
type Attribute string

const (
	AttrName  Attribute = "name"
	AttrEmail Attribute = "email"
)

// Lookup resolves a single identity attribute from an external source.
// dir is the directory of the document being edited, or "" when unknown.
type Lookup interface {
	Lookup(ctx context.Context, dir string, attr Attribute) (string, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, dir string, attr Attribute) (string, error)

// Lookup calls f.
func (f LookupFunc) Lookup(ctx context.Context, dir string, attr Attribute) (string, error) {
	return f(ctx, dir, attr)
}

// ErrNotFound is returned when a source has no value for an attribute.
var ErrNotFound = errors.New("identity attribute not found")

// GitLookup reads user.name / user.email with `git config --get`.
// Running inside the document's directory picks up repository-local identity.
type GitLookup struct {
	Runner CommandRunner
}

// NewGitLookup creates a git lookup backed by os/exec.
func NewGitLookup() *GitLookup {
	return &GitLookup{Runner: &RealCommandRunner{}}
}

// Lookup runs one git config query.
func (g *GitLookup) Lookup(ctx context.Context, dir string, attr Attribute) (string, error) {
	key := "user." + string(attr)
	output, err := g.Runner.RunInDir(ctx, dir, "git", "config", "--get", key)
	if err != nil {
		return "", fmt.Errorf("git config %s: %w", key, err)
	}
	value := strings.TrimSpace(string(output))
	if value == "" {
		return "", fmt.Errorf("git config %s: %w", key, ErrNotFound)
	}
	return value, nil
}

// GitHubLookup reads the profile of the user owning an API token.
type GitHubLookup struct {
	client *github.Client
}

// NewGitHubLookup creates a lookup authenticated with token.
func NewGitHubLookup(token string) *GitHubLookup {
	return &GitHubLookup{client: github.NewClient(nil).WithAuthToken(token)}
}

// NewGitHubLookupWithClient uses a preconfigured client.
func NewGitHubLookupWithClient(client *github.Client) *GitHubLookup {
	return &GitHubLookup{client: client}
}

// Lookup queries the authenticated user. The login stands in for a missing display name.
func (g *GitHubLookup) Lookup(ctx context.Context, _ string, attr Attribute) (string, error) {
	user, _, err := g.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get github user: %w", err)
	}

	var value string
	switch attr {
	case AttrName:
		value = user.GetName()
		if value == "" {
			value = user.GetLogin()
		}
	case AttrEmail:
		value = user.GetEmail()
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("github user %s: %w", attr, ErrNotFound)
	}
	return value, nil
}

// Chain tries each lookup in order and returns the first value found.
type Chain []Lookup

// Lookup walks the chain; the error of the last source is returned when all fail.
func (c Chain) Lookup(ctx context.Context, dir string, attr Attribute) (string, error) {
	err := ErrNotFound
	for _, l := range c {
		if l == nil {
			continue
		}
		var value string
		value, err = l.Lookup(ctx, dir, attr)
		if err == nil && value != "" {
			return value, nil
		}
		if err == nil {
			err = ErrNotFound
		}
	}
	return "", err
}
