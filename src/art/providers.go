package art

import (
	"fmt"
	"time"

	"github.com/ironsmile/artframe/src/config"
)

// NewProviders returns the providers named in the configuration in the same
// order. Every one of them produces artwork URLs for the configured image size.
func NewProviders(cfg config.Config, useragent string) ([]Provider, error) {
	var providers []Provider

	for _, name := range cfg.Providers {
		switch name {
		case config.ProviderITunes:
			c := NewITunesClient(
				useragent,
				cfg.Image.TargetSize,
				cfg.ITunes.RequestsPerSecond,
				time.Duration(cfg.ITunes.Timeout)*time.Second,
			)
			if cfg.ITunes.Limit > 0 {
				c.Limit = cfg.ITunes.Limit
			}
			c.Country = cfg.ITunes.Country
			if cfg.ITunes.BaseURL != "" {
				c.apiHost = cfg.ITunes.BaseURL
			}
			providers = append(providers, c)
		case config.ProviderMusicBrainz:
			c := NewMusicBrainzClient(
				useragent,
				cfg.Image.TargetSize,
				cfg.MusicBrainz.RequestsPerSecond,
				time.Duration(cfg.MusicBrainz.Timeout)*time.Second,
			)
			c.MinScore = cfg.MusicBrainz.MinScore
			if cfg.MusicBrainz.BaseURL != "" {
				c.musicBrainzAPIHost = cfg.MusicBrainz.BaseURL
			}
			providers = append(providers, c)
		default:
			return nil, fmt.Errorf("unknown artwork provider `%s`", name)
		}
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("no artwork providers configured")
	}

	return providers, nil
}
