package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/scopeshot/scopeshot-cli/internal/application/ports"
	"github.com/scopeshot/scopeshot-cli/internal/core/identity"
	"github.com/scopeshot/scopeshot-cli/internal/core/plugin"
)

// ErrMissingAddress is returned when no instrument address was given
var ErrMissingAddress = errors.New("missing address")

// CaptureRequest holds the user's screenshot parameters
type CaptureRequest struct {
	Address    string
	PluginName string
	Filename   string
	Timeout    time.Duration
}

// CaptureResult describes a saved screenshot
type CaptureResult struct {
	Plugin   string
	Identity string
	Filename string
	Format   string
	Bytes    int
}

// DetectionReport is the outcome of a dry-run autodetection
type DetectionReport struct {
	Identity identity.Identity
	Scores   []plugin.MatchResult
	Winner   string // empty when no plugin matched
}

// ScreenshotService selects a plugin, captures a screenshot and stores it
type ScreenshotService struct {
	registry   *plugin.Registry
	selector   ports.PluginSelector
	dispatcher ports.PluginDispatcher
	querier    plugin.IdentityQuerier
	matcher    plugin.Matcher
	repository ports.ScreenshotRepository
	logger     zerolog.Logger
}

// NewScreenshotService creates a new screenshot service
func NewScreenshotService(
	registry *plugin.Registry,
	selector ports.PluginSelector,
	dispatcher ports.PluginDispatcher,
	querier plugin.IdentityQuerier,
	matcher plugin.Matcher,
	repository ports.ScreenshotRepository,
	logger zerolog.Logger,
) *ScreenshotService {
	return &ScreenshotService{
		registry:   registry,
		selector:   selector,
		dispatcher: dispatcher,
		querier:    querier,
		matcher:    matcher,
		repository: repository,
		logger:     logger,
	}
}

// Plugins returns the registered plugins in registration order
func (s *ScreenshotService) Plugins() []plugin.Descriptor {
	return s.registry.All()
}

// Select validates req and resolves the plugin that will capture the screenshot
func (s *ScreenshotService) Select(ctx context.Context, req CaptureRequest) (*plugin.Selection, error) {
	if strings.TrimSpace(req.Address) == "" {
		return nil, ErrMissingAddress
	}

	return s.selector.Select(ctx, plugin.SelectRequest{
		Address:    req.Address,
		PluginName: req.PluginName,
		Timeout:    req.Timeout,
	})
}

// Capture runs the selected plugin and stores the screenshot
func (s *ScreenshotService) Capture(ctx context.Context, sel *plugin.Selection, req CaptureRequest) (*CaptureResult, error) {
	if sel == nil {
		return nil, fmt.Errorf("no plugin selected")
	}

	shot, err := s.dispatcher.Run(ctx, sel.Descriptor, plugin.CaptureRequest{
		Address:  req.Address,
		Identity: sel.Identity,
		Timeout:  req.Timeout,
	})
	if err != nil {
		return nil, err
	}

	filename, err := s.repository.Dump(shot.Data, shot.Format, req.Address, req.Filename)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("file", filename).Int("bytes", len(shot.Data)).Msg("screenshot saved")

	return &CaptureResult{
		Plugin:   sel.Descriptor.Name(),
		Identity: sel.Identity,
		Filename: filename,
		Format:   shot.Format,
		Bytes:    len(shot.Data),
	}, nil
}

// Detect queries the instrument identity and scores every plugin without
// capturing anything
func (s *ScreenshotService) Detect(ctx context.Context, address string, timeout time.Duration) (*DetectionReport, error) {
	if strings.TrimSpace(address) == "" {
		return nil, ErrMissingAddress
	}

	raw, err := s.querier.QueryIdentity(ctx, address, timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", plugin.ErrIdentityQuery, err)
	}

	id := identity.Parse(raw)
	descriptors := s.registry.All()
	scores, winner := plugin.Rank(id.Raw(), descriptors, s.matcher)

	report := &DetectionReport{Identity: id, Scores: scores}
	if winner >= 0 {
		report.Winner = descriptors[winner].Name()
	}
	return report, nil
}
