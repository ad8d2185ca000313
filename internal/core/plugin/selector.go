package plugin

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/scopeshot/scopeshot-cli/internal/core/identity"
)

// IdentityQuerier retrieves the raw identity string of an instrument
type IdentityQuerier interface {
	QueryIdentity(ctx context.Context, address string, timeout time.Duration) (string, error)
}

// SelectRequest describes how a plugin should be chosen
type SelectRequest struct {
	Address    string
	PluginName string // explicit plugin; empty means autodetect
	Timeout    time.Duration
}

// MatchResult is the score a single plugin achieved against an identity
type MatchResult struct {
	Name  string
	Score int
}

// Selection is the outcome of a successful plugin selection
type Selection struct {
	Descriptor   Descriptor
	Identity     string // normalized identity, empty in explicit mode
	Autodetected bool
	Scores       []MatchResult
}

// Selector picks the plugin that should handle an instrument
type Selector struct {
	registry *Registry
	matcher  Matcher
	querier  IdentityQuerier
	logger   zerolog.Logger
}

// NewSelector creates a selector over a populated registry
func NewSelector(registry *Registry, matcher Matcher, querier IdentityQuerier, logger zerolog.Logger) *Selector {
	if matcher == nil {
		matcher = NewRegexpMatcher()
	}
	return &Selector{
		registry: registry,
		matcher:  matcher,
		querier:  querier,
		logger:   logger,
	}
}

// Select resolves the plugin for req. An explicit plugin name skips the
// identity query entirely.
func (s *Selector) Select(ctx context.Context, req SelectRequest) (*Selection, error) {
	if req.PluginName != "" {
		return s.ByName(req.PluginName)
	}
	return s.Autodetect(ctx, req.Address, req.Timeout)
}

// ByName looks a plugin up by its exact name
func (s *Selector) ByName(name string) (*Selection, error) {
	d, ok := s.registry.FindByName(name)
	if !ok {
		return nil, &UnknownPluginError{Name: name}
	}
	s.logger.Debug().Str("plugin", name).Msg("plugin selected by name")
	return &Selection{Descriptor: d}, nil
}

// Autodetect queries the instrument identity and picks the best matching plugin
func (s *Selector) Autodetect(ctx context.Context, address string, timeout time.Duration) (*Selection, error) {
	if s.querier == nil {
		return nil, fmt.Errorf("%w: no identity querier configured", ErrIdentityQuery)
	}

	raw, err := s.querier.QueryIdentity(ctx, address, timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIdentityQuery, err)
	}
	id := identity.Normalize(raw)
	s.logger.Debug().Str("address", address).Str("identity", id).Msg("instrument identified")

	descriptors := s.registry.All()
	scores, winner := Rank(id, descriptors, s.matcher)
	for _, r := range scores {
		s.logger.Debug().Str("plugin", r.Name).Int("score", r.Score).Msg("plugin scored")
	}

	if winner < 0 {
		return nil, ErrAutodetectFailed
	}

	return &Selection{
		Descriptor:   descriptors[winner],
		Identity:     id,
		Autodetected: true,
		Scores:       scores,
	}, nil
}

// Rank scores every descriptor against identity in order and returns the
// index of the winner, or -1 when nothing scored above zero. A later
// descriptor only wins with a strictly greater score, so ties go to the
// earliest registered plugin.
func Rank(identity string, descriptors []Descriptor, matcher Matcher) ([]MatchResult, int) {
	results := make([]MatchResult, 0, len(descriptors))
	winner, best := -1, 0

	for i, d := range descriptors {
		score := 0
		if d.HasPatterns() {
			score = matcher.Score(identity, d)
		}
		results = append(results, MatchResult{Name: d.Name(), Score: score})

		if score > best {
			winner, best = i, score
		}
	}

	return results, winner
}
