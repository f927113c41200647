package engine

import (
	"github.com/cexll/fileheader/internal/config"
	"github.com/cexll/fileheader/internal/identity"
)

// NewResolver builds the identity resolver: configured values first, then
// git config, then the GitHub profile when a token is available.
func NewResolver(cfg *config.Config) *identity.Resolver {
	chain := identity.Chain{identity.NewGitLookup()}
	if cfg.GitHubToken != "" {
		chain = append(chain, identity.NewGitHubLookup(cfg.GitHubToken))
	}
	return &identity.Resolver{
		Author: cfg.Author,
		Email:  cfg.Email,
		Lookup: chain,
	}
}

// NewFromConfig creates an engine from loaded configuration.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Engine, error) {
	return New(Config{
		DateFormat:       cfg.DateFormat,
		Header:           cfg.HeaderOptions(),
		AutoInsertOnSave: cfg.AutoInsertOnSave,
		UpdateInterval:   cfg.UpdateInterval(),
	}, NewResolver(cfg), opts...)
}
