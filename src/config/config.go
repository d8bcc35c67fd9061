// Package config is responsible for finding, parsing and validating the artframe
// configuration. The user configuration is decoded on top of the defaults so
// that only the changed values need to be present in the file.
//
// The configuration lives in $HOME/.artframe/config.json unless another file
// is given on the command line. Files with .yaml or .yml extension are parsed
// as YAML. Finally ARTFRAME_* environment variables (possibly coming from a
// .env file) override whatever the file says.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/ironsmile/artframe/src/helpers"
)

// ConfigName is the name of the user configuration file in the artframe
// user directory.
const ConfigName = "config.json"

// Names of the providers which could be used in Config.Providers.
const (
	ProviderITunes      = "itunes"
	ProviderMusicBrainz = "musicbrainz"
)

// Config contains representation for everything in config.json.
type Config struct {
	Listen         string `json:"listen" yaml:"listen"`
	DataDir        string `json:"data_dir" yaml:"data_dir"`
	PublishDir     string `json:"publish_dir" yaml:"publish_dir"`
	LogFile        string `json:"log_file" yaml:"log_file"`
	ReadTimeout    int    `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout   int    `json:"write_timeout" yaml:"write_timeout"`
	MaxHeadersSize int    `json:"max_header_bytes" yaml:"max_header_bytes"`
	Gzip           bool   `json:"gzip" yaml:"gzip"`

	// Providers is the fallback order of the artwork providers.
	Providers []string `json:"providers" yaml:"providers"`

	Image       Image       `json:"image" yaml:"image"`
	Cache       Cache       `json:"cache" yaml:"cache"`
	Retry       Retry       `json:"retry" yaml:"retry"`
	ITunes      ITunes      `json:"itunes" yaml:"itunes"`
	MusicBrainz MusicBrainz `json:"musicbrainz" yaml:"musicbrainz"`
	Download    Download    `json:"download" yaml:"download"`
	Publish     Publish     `json:"publish" yaml:"publish"`
}

// Image configures the normalized artwork.
type Image struct {
	TargetSize  int `json:"target_size" yaml:"target_size"`
	JPEGQuality int `json:"jpeg_quality" yaml:"jpeg_quality"`
}

// Cache configures the durable artwork cache and the in-memory search hints.
type Cache struct {
	Dir       string `json:"dir" yaml:"dir"`
	MaxSizeMB int64  `json:"max_size_mb" yaml:"max_size_mb"`

	// HintTTL is in seconds.
	HintTTL     int `json:"hint_ttl" yaml:"hint_ttl"`
	HintEntries int `json:"hint_entries" yaml:"hint_entries"`

	S3 S3 `json:"s3" yaml:"s3"`
}

// S3 configures an S3 compatible bucket used for the cache blobs instead of
// the local file system.
type S3 struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	Region    string `json:"region" yaml:"region"`
	AccessKey string `json:"access_key" yaml:"access_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key"`
	Bucket    string `json:"bucket" yaml:"bucket"`
	Prefix    string `json:"prefix" yaml:"prefix"`
	UseSSL    bool   `json:"use_ssl" yaml:"use_ssl"`
}

// Retry configures retrying of the provider requests and downloads. Delays
// are in milliseconds.
type Retry struct {
	MaxAttempts  int `json:"max_attempts" yaml:"max_attempts"`
	InitialDelay int `json:"initial_delay" yaml:"initial_delay"`
	MaxDelay     int `json:"max_delay" yaml:"max_delay"`
}

// ITunes configures the iTunes Search API client.
type ITunes struct {
	BaseURL           string  `json:"base_url" yaml:"base_url"`
	Country           string  `json:"country" yaml:"country"`
	Limit             int     `json:"limit" yaml:"limit"`
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
	Timeout           int     `json:"timeout" yaml:"timeout"`
}

// MusicBrainz configures the MusicBrainz and Cover Art Archive client.
type MusicBrainz struct {
	BaseURL           string  `json:"base_url" yaml:"base_url"`
	MinScore          int     `json:"min_score" yaml:"min_score"`
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
	Timeout           int     `json:"timeout" yaml:"timeout"`
}

// Download configures fetching the artwork images of providers which do not
// download them on their own.
type Download struct {
	// Timeout is in seconds and applies to every single download.
	Timeout int `json:"timeout" yaml:"timeout"`
}

// Publish configures the files shared with the renderer.
type Publish struct {
	ImageFile    string `json:"image_file" yaml:"image_file"`
	MetadataFile string `json:"metadata_file" yaml:"metadata_file"`
	StatusFile   string `json:"status_file" yaml:"status_file"`

	// ControlQR makes the daemon write a QR code image pointing at
	// ControlURL in the publish directory.
	ControlQR  bool   `json:"control_qr" yaml:"control_qr"`
	QRFile     string `json:"qr_file" yaml:"qr_file"`
	ControlURL string `json:"control_url" yaml:"control_url"`
}

// Defaults returns the configuration used when nothing is set by the user.
func Defaults() Config {
	return Config{
		Listen:         ":5000",
		PublishDir:     "display",
		ReadTimeout:    15,
		WriteTimeout:   60,
		MaxHeadersSize: 1 << 20,
		Gzip:           true,
		Providers:      []string{ProviderITunes, ProviderMusicBrainz},
		Image: Image{
			TargetSize:  720,
			JPEGQuality: 95,
		},
		Cache: Cache{
			Dir:         "cache",
			MaxSizeMB:   500,
			HintTTL:     3600,
			HintEntries: 100,
			S3: S3{
				Region: "us-east-1",
				Bucket: "artframe",
			},
		},
		Retry: Retry{
			MaxAttempts:  4,
			InitialDelay: 2000,
			MaxDelay:     30000,
		},
		ITunes: ITunes{
			BaseURL:           "https://itunes.apple.com",
			Limit:             5,
			RequestsPerSecond: 5,
			Timeout:           10,
		},
		MusicBrainz: MusicBrainz{
			BaseURL:           "https://musicbrainz.org",
			MinScore:          90,
			RequestsPerSecond: 1,
			Timeout:           10,
		},
		Download: Download{
			Timeout: 20,
		},
		Publish: Publish{
			ImageFile:    "current_album_art.jpg",
			MetadataFile: "current_metadata.json",
			StatusFile:   "display_status.txt",
			QRFile:       "control_qr.png",
		},
	}
}

// UserConfigPath returns the full path to the place where the user's
// configuration file should be.
func UserConfigPath() (string, error) {
	userPath, err := helpers.ProjectUserPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(userPath, ConfigName), nil
}

// Load reads the configuration file at path and decodes it over the defaults.
// When path is empty the user configuration file is used and it is created with
// the default values if it does not exist yet. Environment overrides are
// applied last.
func Load(fs afero.Fs, path string) (Config, error) {
	cfg := Defaults()

	if path == "" {
		userPath, err := UserConfigPath()
		if err != nil {
			return cfg, err
		}
		path = userPath

		if err := writeDefaultIfMissing(fs, path); err != nil {
			return cfg, err
		}
	}

	if err := cfg.parse(fs, path); err != nil {
		return cfg, err
	}

	_ = godotenv.Load()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	cfg.resolvePaths(filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func writeDefaultIfMissing(fs afero.Fs, path string) error {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return fmt.Errorf("checking for user config: %w", err)
	}
	if exists {
		return nil
	}

	encoded, err := json.MarshalIndent(Defaults(), "", "    ")
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating user config directory: %w", err)
	}

	if err := afero.WriteFile(fs, path, encoded, 0o644); err != nil {
		return fmt.Errorf("writing default user config: %w", err)
	}

	return nil
}

// parse decodes the file at filename on top of the values already in cfg.
func (cfg *Config) parse(fs afero.Fs, filename string) error {
	content, err := afero.ReadFile(fs, filename)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("parsing YAML config %s: %w", filename, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("parsing JSON config %s: %w", filename, err)
		}
	}

	return nil
}

// ApplyEnv overrides configuration values from ARTFRAME_* environment
// variables. lookup is usually os.LookupEnv.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if val, ok := lookup(name); ok && strings.TrimSpace(val) != "" {
			*dst = strings.TrimSpace(val)
		}
	}

	var errs []error
	integer := func(name string, dst *int) {
		val, ok := lookup(name)
		if !ok || strings.TrimSpace(val) == "" {
			return
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			return
		}
		*dst = parsed
	}
	boolean := func(name string, dst *bool) {
		val, ok := lookup(name)
		if !ok || strings.TrimSpace(val) == "" {
			return
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			return
		}
		*dst = parsed
	}

	str("ARTFRAME_LISTEN", &cfg.Listen)
	str("ARTFRAME_DATA_DIR", &cfg.DataDir)
	str("ARTFRAME_PUBLISH_DIR", &cfg.PublishDir)
	str("ARTFRAME_LOG_FILE", &cfg.LogFile)
	str("ARTFRAME_CACHE_DIR", &cfg.Cache.Dir)
	integer("ARTFRAME_IMAGE_SIZE", &cfg.Image.TargetSize)
	integer("ARTFRAME_JPEG_QUALITY", &cfg.Image.JPEGQuality)
	integer("ARTFRAME_RETRY_MAX_ATTEMPTS", &cfg.Retry.MaxAttempts)
	integer("ARTFRAME_DOWNLOAD_TIMEOUT", &cfg.Download.Timeout)
	str("ARTFRAME_CONTROL_URL", &cfg.Publish.ControlURL)

	if val, ok := lookup("ARTFRAME_CACHE_MAX_SIZE_MB"); ok && strings.TrimSpace(val) != "" {
		parsed, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("ARTFRAME_CACHE_MAX_SIZE_MB: %w", err))
		} else {
			cfg.Cache.MaxSizeMB = parsed
		}
	}

	if val, ok := lookup("ARTFRAME_PROVIDERS"); ok && strings.TrimSpace(val) != "" {
		var providers []string
		for _, name := range strings.Split(val, ",") {
			if name = strings.TrimSpace(name); name != "" {
				providers = append(providers, strings.ToLower(name))
			}
		}
		cfg.Providers = providers
	}

	boolean("ARTFRAME_S3_ENABLED", &cfg.Cache.S3.Enabled)
	str("ARTFRAME_S3_ENDPOINT", &cfg.Cache.S3.Endpoint)
	str("ARTFRAME_S3_REGION", &cfg.Cache.S3.Region)
	str("ARTFRAME_S3_ACCESS_KEY", &cfg.Cache.S3.AccessKey)
	str("ARTFRAME_S3_SECRET_KEY", &cfg.Cache.S3.SecretKey)
	str("ARTFRAME_S3_BUCKET", &cfg.Cache.S3.Bucket)
	boolean("ARTFRAME_S3_USE_SSL", &cfg.Cache.S3.UseSSL)

	return errors.Join(errs...)
}

// resolvePaths makes all relative directories absolute. DataDir defaults to
// the directory of the configuration file.
func (cfg *Config) resolvePaths(configDir string) {
	if cfg.DataDir == "" {
		cfg.DataDir = configDir
	}
	cfg.DataDir = helpers.AbsolutePath(cfg.DataDir, configDir)
	cfg.PublishDir = helpers.AbsolutePath(cfg.PublishDir, cfg.DataDir)
	cfg.Cache.Dir = helpers.AbsolutePath(cfg.Cache.Dir, cfg.DataDir)
	if cfg.LogFile != "" {
		cfg.LogFile = helpers.AbsolutePath(cfg.LogFile, cfg.DataDir)
	}
}

// Validate returns an error describing every invalid value in cfg.
func (cfg Config) Validate() error {
	var errs []error

	if cfg.Listen == "" {
		errs = append(errs, errors.New("listen address must not be empty"))
	}
	if cfg.Image.TargetSize <= 0 {
		errs = append(errs, fmt.Errorf("image.target_size must be positive, got %d",
			cfg.Image.TargetSize))
	}
	if cfg.Image.JPEGQuality < 1 || cfg.Image.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("image.jpeg_quality must be in [1, 100], got %d",
			cfg.Image.JPEGQuality))
	}
	if cfg.Cache.MaxSizeMB <= 0 {
		errs = append(errs, fmt.Errorf("cache.max_size_mb must be positive, got %d",
			cfg.Cache.MaxSizeMB))
	}
	if cfg.Cache.HintEntries < 0 || cfg.Cache.HintTTL < 0 {
		errs = append(errs, errors.New("cache hint settings must not be negative"))
	}
	if cfg.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("retry.max_attempts must be at least 1, got %d",
			cfg.Retry.MaxAttempts))
	}
	if cfg.Retry.InitialDelay < 0 || cfg.Retry.MaxDelay < 0 {
		errs = append(errs, errors.New("retry delays must not be negative"))
	}
	if cfg.Download.Timeout < 0 {
		errs = append(errs, fmt.Errorf("download.timeout must not be negative, got %d",
			cfg.Download.Timeout))
	}
	if len(cfg.Providers) == 0 {
		errs = append(errs, errors.New("at least one provider is required"))
	}
	seen := make(map[string]bool)
	for _, name := range cfg.Providers {
		switch name {
		case ProviderITunes, ProviderMusicBrainz:
		default:
			errs = append(errs, fmt.Errorf("unknown provider %q", name))
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("provider %q listed more than once", name))
		}
		seen[name] = true
	}
	if cfg.Publish.ImageFile == "" || cfg.Publish.MetadataFile == "" ||
		cfg.Publish.StatusFile == "" {
		errs = append(errs, errors.New("publish file names must not be empty"))
	}
	if cfg.Cache.S3.Enabled && (cfg.Cache.S3.Endpoint == "" || cfg.Cache.S3.Bucket == "") {
		errs = append(errs, errors.New("cache.s3 needs an endpoint and a bucket"))
	}

	return errors.Join(errs...)
}

// CapacityBytes returns the cache capacity in bytes.
func (c Cache) CapacityBytes() int64 {
	return c.MaxSizeMB * 1024 * 1024
}

// HintDuration returns for how long a search hint is kept.
func (c Cache) HintDuration() time.Duration {
	return time.Duration(c.HintTTL) * time.Second
}

// InitialDelayDuration returns the delay after the first failed attempt.
func (r Retry) InitialDelayDuration() time.Duration {
	return time.Duration(r.InitialDelay) * time.Millisecond
}

// MaxDelayDuration returns the maximum delay between two attempts.
func (r Retry) MaxDelayDuration() time.Duration {
	return time.Duration(r.MaxDelay) * time.Millisecond
}

// TimeoutDuration returns the timeout of a single download. Zero means no
// timeout.
func (d Download) TimeoutDuration() time.Duration {
	return time.Duration(d.Timeout) * time.Second
}
