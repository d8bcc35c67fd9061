package config

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/ironsmile/artframe/src/assert"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	assert.NilErr(t, cfg.Validate())

	assert.Equal(t, ":5000", cfg.Listen)
	assert.Equal(t, 720, cfg.Image.TargetSize)
	assert.Equal(t, 95, cfg.Image.JPEGQuality)
	assert.Equal(t, int64(500*1024*1024), cfg.Cache.CapacityBytes())
	assert.Equal(t, 4, cfg.Retry.MaxAttempts)
	assert.Equal(t, "2s", cfg.Retry.InitialDelayDuration().String())
	assert.Equal(t, "1h0m0s", cfg.Cache.HintDuration().String())
	assert.Equal(t, "20s", cfg.Download.TimeoutDuration().String())
}

func TestLoadJSONOverDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.FromSlash("/etc/artframe/config.json")

	content := `{
		"listen": ":8080",
		"providers": ["musicbrainz"],
		"image": {"target_size": 600},
		"cache": {"max_size_mb": 20}
	}`
	assert.NilErr(t, afero.WriteFile(fs, path, []byte(content), 0o644))

	cfg, err := Load(fs, path)
	assert.NilErr(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, 600, cfg.Image.TargetSize)
	assert.Equal(t, 95, cfg.Image.JPEGQuality, "unset values keep their defaults")
	assert.Equal(t, int64(20), cfg.Cache.MaxSizeMB)
	assert.Equal(t, 1, len(cfg.Providers))
	assert.Equal(t, ProviderMusicBrainz, cfg.Providers[0])

	expectedCache := filepath.Join(filepath.FromSlash("/etc/artframe"), "cache")
	assert.Equal(t, expectedCache, cfg.Cache.Dir)
	expectedPublish := filepath.Join(filepath.FromSlash("/etc/artframe"), "display")
	assert.Equal(t, expectedPublish, cfg.PublishDir)
}

func TestLoadYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.FromSlash("/srv/artframe.yaml")

	content := strings.Join([]string{
		"data_dir: /var/lib/artframe",
		"publish_dir: /run/artframe",
		"retry:",
		"  max_attempts: 2",
		"  initial_delay: 10",
		"musicbrainz:",
		"  min_score: 70",
	}, "\n")
	assert.NilErr(t, afero.WriteFile(fs, path, []byte(content), 0o644))

	cfg, err := Load(fs, path)
	assert.NilErr(t, err)

	assert.Equal(t, 2, cfg.Retry.MaxAttempts)
	assert.Equal(t, "10ms", cfg.Retry.InitialDelayDuration().String())
	assert.Equal(t, 70, cfg.MusicBrainz.MinScore)
	assert.Equal(t, filepath.FromSlash("/run/artframe"), cfg.PublishDir)
	assert.Equal(
		t,
		filepath.Join(filepath.FromSlash("/var/lib/artframe"), "cache"),
		cfg.Cache.Dir,
	)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/config.json"
	assert.NilErr(t, afero.WriteFile(fs, path, []byte(`{"lisen": ":80"}`), 0o644))

	_, err := Load(fs, path)
	assert.NotNilErr(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/no/such/config.json")
	assert.NotNilErr(t, err)
}

func TestLoadCreatesUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	fs := afero.NewMemMapFs()
	cfg, err := Load(fs, "")
	assert.NilErr(t, err)
	assert.Equal(t, Defaults().Listen, cfg.Listen)

	userPath, err := UserConfigPath()
	assert.NilErr(t, err)

	content, err := afero.ReadFile(fs, userPath)
	assert.NilErr(t, err)

	var written Config
	assert.NilErr(t, json.Unmarshal(content, &written))
	assert.Equal(t, Defaults().Image.TargetSize, written.Image.TargetSize)
	assert.Equal(t, filepath.Dir(userPath), cfg.DataDir)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"ARTFRAME_LISTEN":            ":9000",
		"ARTFRAME_PROVIDERS":         " MusicBrainz , itunes ",
		"ARTFRAME_CACHE_MAX_SIZE_MB": "42",
		"ARTFRAME_S3_ENABLED":        "true",
		"ARTFRAME_S3_ENDPOINT":       "minio:9000",
		"ARTFRAME_IMAGE_SIZE":        "  ",
		"ARTFRAME_DOWNLOAD_TIMEOUT":  "45",
	}
	lookup := func(name string) (string, bool) {
		val, ok := env[name]
		return val, ok
	}

	cfg := Defaults()
	assert.NilErr(t, cfg.ApplyEnv(lookup))

	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, int64(42), cfg.Cache.MaxSizeMB)
	assert.Equal(t, true, cfg.Cache.S3.Enabled)
	assert.Equal(t, "minio:9000", cfg.Cache.S3.Endpoint)
	assert.Equal(t, 45, cfg.Download.Timeout)
	assert.Equal(t, 10, cfg.ITunes.Timeout, "provider timeouts are separate")
	assert.Equal(t, 720, cfg.Image.TargetSize, "blank values are ignored")
	assert.Equal(t, 2, len(cfg.Providers))
	assert.Equal(t, ProviderMusicBrainz, cfg.Providers[0])
	assert.Equal(t, ProviderITunes, cfg.Providers[1])
	assert.NilErr(t, cfg.Validate())
}

func TestApplyEnvBadValues(t *testing.T) {
	env := map[string]string{
		"ARTFRAME_RETRY_MAX_ATTEMPTS": "many",
		"ARTFRAME_S3_USE_SSL":         "perhaps",
	}
	lookup := func(name string) (string, bool) {
		val, ok := env[name]
		return val, ok
	}

	cfg := Defaults()
	err := cfg.ApplyEnv(lookup)
	assert.NotNilErr(t, err)

	if !strings.Contains(err.Error(), "ARTFRAME_RETRY_MAX_ATTEMPTS") ||
		!strings.Contains(err.Error(), "ARTFRAME_S3_USE_SSL") {
		t.Errorf("expected both variables in the error but got: %s", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		desc   string
		modify func(*Config)
	}{
		{
			desc:   "empty listen",
			modify: func(c *Config) { c.Listen = "" },
		},
		{
			desc:   "zero target size",
			modify: func(c *Config) { c.Image.TargetSize = 0 },
		},
		{
			desc:   "quality out of range",
			modify: func(c *Config) { c.Image.JPEGQuality = 101 },
		},
		{
			desc:   "no cache capacity",
			modify: func(c *Config) { c.Cache.MaxSizeMB = 0 },
		},
		{
			desc:   "no attempts",
			modify: func(c *Config) { c.Retry.MaxAttempts = 0 },
		},
		{
			desc:   "negative download timeout",
			modify: func(c *Config) { c.Download.Timeout = -1 },
		},
		{
			desc:   "no providers",
			modify: func(c *Config) { c.Providers = nil },
		},
		{
			desc:   "unknown provider",
			modify: func(c *Config) { c.Providers = []string{"spotify"} },
		},
		{
			desc: "duplicated provider",
			modify: func(c *Config) {
				c.Providers = []string{ProviderITunes, ProviderITunes}
			},
		},
		{
			desc:   "empty status file name",
			modify: func(c *Config) { c.Publish.StatusFile = "" },
		},
		{
			desc:   "s3 without endpoint",
			modify: func(c *Config) { c.Cache.S3.Enabled = true },
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			cfg := Defaults()
			test.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}
