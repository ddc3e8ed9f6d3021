package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read from the working directory when present.
const DefaultEnvFile = ".env"

const envPrefix = "CASEKEEPER_"

type lookupFunc func(key string) (string, bool)

func osLookup(key string) (string, bool) { return os.LookupEnv(key) }

// parseEnv overlays cfg with CASEKEEPER_* variables. Values from envFile fill
// in whatever the process environment leaves unset. A missing envFile is not
// an error; a malformed one or an unparsable duration panics.
func parseEnv(cfg *Config, envFile string, lookup lookupFunc) {
	dotenv := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			panic(err)
		}
	}

	get := func(name string) (string, bool) {
		key := envPrefix + name
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	str := func(name string, dst *string) {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	str("LISTEN_ADDR", &cfg.ListenAddr)
	str("DATABASE_DSN", &cfg.DatabaseDSN)
	str("SECRET_KEY", &cfg.SecretKey)
	str("SNAPSHOT_BACKEND", &cfg.SnapshotBackend)
	str("S3_ROOT_USER", &cfg.S3RootUser)
	str("S3_ROOT_PASSWORD", &cfg.S3RootPassword)
	str("S3_BUCKET", &cfg.S3Bucket)
	str("S3_REGION", &cfg.S3Region)
	str("S3_BASE_ENDPOINT", &cfg.S3BaseEndpoint)

	if v, ok := get("TOKEN_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.TokenTTL = d
	}
}
