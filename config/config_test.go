package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "firestore", cfg.Store.Driver)
}

func TestConfig_ApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Auth:  &AuthConfig{TokenTTL: 15 * time.Minute},
		Store: &StoreConfig{Driver: "memory"},
	}
	cfg.HTTP.MaxRequestBodySize = "1MB"
	cfg.applyDefaults()

	assert.Equal(t, "1MB", cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "memory", cfg.Store.Driver)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "memory store with secret",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "missing secret",
			mutate:  func(cfg *Config) { cfg.SecretKey.Access = "  " },
			wantErr: "secretKey.access must be provided",
		},
		{
			name:    "firestore without project",
			mutate:  func(cfg *Config) { cfg.Store.Driver = "firestore" },
			wantErr: "firebase.projectId is required",
		},
		{
			name: "firestore with project",
			mutate: func(cfg *Config) {
				cfg.Store.Driver = "firestore"
				cfg.Firebase = &FirebaseConfig{ProjectID: "demo"}
			},
		},
		{
			name:    "postgres without dsn",
			mutate:  func(cfg *Config) { cfg.Store.Driver = "postgres" },
			wantErr: "postgres.dsn is required",
		},
		{
			name:    "unknown driver",
			mutate:  func(cfg *Config) { cfg.Store.Driver = "mongo" },
			wantErr: "unknown store driver: mongo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Store: &StoreConfig{Driver: "memory"}}
			cfg.SecretKey.Access = "secret"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
