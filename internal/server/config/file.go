package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/casekeeper/internal/flagx"
	"github.com/dmitrijs2005/casekeeper/internal/timex"
)

// FileConfig is the on-disk shape of the server config file. TokenTTL accepts
// "24h" style strings or integer nanoseconds.
type FileConfig struct {
	ListenAddr      *string         `json:"listen_addr" yaml:"listen_addr"`
	DatabaseDSN     *string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey       *string         `json:"secret_key" yaml:"secret_key"`
	TokenTTL        *timex.Duration `json:"token_ttl" yaml:"token_ttl"`
	SnapshotBackend *string         `json:"snapshot_backend" yaml:"snapshot_backend"`
	S3RootUser      *string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword  *string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket        *string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region        *string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint  *string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
}

// parseFile overlays cfg with the file named by -c/-config. Read or decode
// errors panic.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	set := func(src *string, dst *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(fc.ListenAddr, &cfg.ListenAddr)
	set(fc.DatabaseDSN, &cfg.DatabaseDSN)
	set(fc.SecretKey, &cfg.SecretKey)
	set(fc.SnapshotBackend, &cfg.SnapshotBackend)
	set(fc.S3RootUser, &cfg.S3RootUser)
	set(fc.S3RootPassword, &cfg.S3RootPassword)
	set(fc.S3Bucket, &cfg.S3Bucket)
	set(fc.S3Region, &cfg.S3Region)
	set(fc.S3BaseEndpoint, &cfg.S3BaseEndpoint)
	if fc.TokenTTL != nil {
		cfg.TokenTTL = fc.TokenTTL.Duration
	}
}
