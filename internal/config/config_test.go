package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pht-ctoi/ctoistatus/internal/download"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		file     string
		config   string
		wantErr  bool
		validate func(t *testing.T, cfg *ConfigParam)
	}{
		{
			name: "valid toml overrides defaults",
			file: "ctoistatus.conf",
			config: `format_version = "0.1.0"
data_dir = "out"
tracked_user = "someone"

[cache]
policy = "always_use"

[http]
timeout = "2m"
`,
			validate: func(t *testing.T, cfg *ConfigParam) {
				assert.Equal(t, "out", cfg.DataDir)
				assert.Equal(t, DefaultDownloadDir, cfg.DownloadDir)
				assert.Equal(t, "someone", cfg.TrackedUser)
				assert.Equal(t, 2*time.Minute, cfg.HTTP.GetTimeout())
				assert.Equal(t, download.AlwaysUse(), cfg.Cache.CachePolicy())
			},
		},
		{
			name: "valid yaml",
			file: "ctoistatus.yaml",
			config: `format_version: "0.1.0"
cache:
  policy: ttl_in_days
  ttl_days: 3
mast:
  batch_size: 100
`,
			validate: func(t *testing.T, cfg *ConfigParam) {
				assert.Equal(t, download.TTLInDays(3), cfg.Cache.CachePolicy())
				assert.Equal(t, 100, cfg.MAST.BatchSize)
				assert.Equal(t, DefaultTOIURL, cfg.Sources.TOIURL)
			},
		},
		{
			name:    "unsupported version",
			file:    "v.conf",
			config:  `format_version = "9.9"`,
			wantErr: true,
		},
		{
			name: "unknown cache policy",
			file: "p.conf",
			config: `format_version = "0.1.0"
[cache]
policy = "sometimes"`,
			wantErr: true,
		},
		{
			name: "bad duration",
			file: "d.conf",
			config: `format_version = "0.1.0"
[http]
timeout = "10w"`,
			wantErr: true,
		},
		{
			name:    "malformed toml",
			file:    "bad.conf",
			config:  `format_version = `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(tmpDir, tt.file)
			require.NoError(t, os.WriteFile(file, []byte(tt.config), 0644))

			cfg, err := LoadConfig(file)
			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.NoError(t, ValidateConfig(cfg))
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, DefaultTrackedUser, cfg.TrackedUser)
	assert.Equal(t, download.TTLInDays(7), cfg.Cache.CachePolicy())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.conf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteConfigRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "ctoistatus.conf")
	cfg := Default()
	cfg.TrackedUser = "other"
	require.NoError(t, cfg.WriteConfig(file))

	loaded, err := LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	assert.Error(t, cfg.WriteConfig(""))
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "30s", want: 30 * time.Second},
		{input: "5m", want: 5 * time.Minute},
		{input: "2h", want: 2 * time.Hour},
		{input: "7d", want: 7 * 24 * time.Hour},
		{input: "1", wantErr: true},
		{input: "xd", wantErr: true},
		{input: "3w", wantErr: true},
		{input: "-1s", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
