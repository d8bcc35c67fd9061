// Package control implements the operations exposed to the control surface:
// changing the displayed artwork, pausing, resuming and stopping the display
// and managing the artwork cache.
package control

import (
	"context"
	"fmt"

	"github.com/ironsmile/artframe/src/artwork"
	"github.com/ironsmile/artframe/src/cache"
	"github.com/ironsmile/artframe/src/publish"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . Controller

// Controller is the set of operations available to the control surface.
type Controller interface {
	// Update resolves term to artwork, publishes it and sets the display
	// running.
	Update(ctx context.Context, term string) (artwork.Metadata, error)

	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	Stop(ctx context.Context) error

	// Current returns the metadata of the published artwork.
	Current(ctx context.Context) (artwork.Metadata, error)

	// CurrentImage returns the published image.
	CurrentImage(ctx context.Context) ([]byte, error)

	Status(ctx context.Context) (artwork.Status, error)

	CacheStats(ctx context.Context) (cache.Stats, error)
	CacheClear(ctx context.Context) error
	CacheList(ctx context.Context) ([]cache.Record, error)
}

// Resolver finds and publishes artwork for search terms.
type Resolver interface {
	ResolveAndPublish(ctx context.Context, term string) (artwork.Metadata, error)
	ForgetHints()
}

// CacheManager is the part of the artwork cache used for its management.
type CacheManager interface {
	Stats(ctx context.Context) (cache.Stats, error)
	Clear(ctx context.Context) error
	List(ctx context.Context) ([]cache.Record, error)
}

// Service is the Controller of the daemon.
type Service struct {
	resolver Resolver
	target   *publish.Target
	status   *publish.StatusFile
	cache    CacheManager
}

// NewService returns a Service which resolves with resolver, publishes into
// target, keeps the display status in status and manages the cache c.
func NewService(
	resolver Resolver,
	target *publish.Target,
	status *publish.StatusFile,
	c CacheManager,
) *Service {
	return &Service{
		resolver: resolver,
		target:   target,
		status:   status,
		cache:    c,
	}
}

// Update implements Controller.
func (s *Service) Update(ctx context.Context, term string) (artwork.Metadata, error) {
	md, err := s.resolver.ResolveAndPublish(ctx, term)
	if err != nil {
		return artwork.Metadata{}, err
	}

	if err := s.status.Set(artwork.StatusRunning); err != nil {
		return md, fmt.Errorf("artwork published but the display was not resumed: %w", err)
	}

	return md, nil
}

// Pause implements Controller.
func (s *Service) Pause(_ context.Context) error {
	return s.status.Set(artwork.StatusPaused)
}

// Resume implements Controller.
func (s *Service) Resume(_ context.Context) error {
	return s.status.Set(artwork.StatusRunning)
}

// Stop implements Controller.
func (s *Service) Stop(_ context.Context) error {
	return s.status.Set(artwork.StatusStopped)
}

// Current implements Controller.
func (s *Service) Current(_ context.Context) (artwork.Metadata, error) {
	return s.target.Current()
}

// CurrentImage implements Controller.
func (s *Service) CurrentImage(_ context.Context) ([]byte, error) {
	return s.target.Image()
}

// Status implements Controller.
func (s *Service) Status(_ context.Context) (artwork.Status, error) {
	return s.status.Get()
}

// CacheStats implements Controller.
func (s *Service) CacheStats(ctx context.Context) (cache.Stats, error) {
	return s.cache.Stats(ctx)
}

// CacheClear implements Controller. The remembered search terms are forgotten
// too since their artwork is gone. The published artwork stays.
func (s *Service) CacheClear(ctx context.Context) error {
	if err := s.cache.Clear(ctx); err != nil {
		return err
	}

	s.resolver.ForgetHints()
	return nil
}

// CacheList implements Controller.
func (s *Service) CacheList(ctx context.Context) ([]cache.Record, error) {
	return s.cache.List(ctx)
}

var _ Controller = (*Service)(nil)
