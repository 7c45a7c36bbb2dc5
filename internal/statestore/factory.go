package statestore

import (
	"fmt"
	"strings"

	appcfg "github.com/mfreitas/bariatrack/internal/config"
)

type Logger interface {
	Printf(format string, v ...any)
}

// NewStore builds a state store using mode local|s3|auto. The caller
// handles the Postgres case separately when DATABASE_URL is set; this
// factory only covers the blob-style backends.
func NewStore(cfg appcfg.StateConfig, logger Logger) (Store, string, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = appcfg.StateModeLocal
	}

	switch mode {
	case appcfg.StateModeLocal:
		store, err := NewLocalStore(cfg.DataDir)
		if err != nil {
			return nil, "", err
		}
		logf(logger, "INFO state: mode=local dir=%s (forced)", cfg.DataDir)
		return store, appcfg.StateModeLocal, nil

	case appcfg.StateModeAuto:
		if !cfg.S3.IsConfigured() {
			logf(logger, "INFO state.s3: %s", cfg.S3.DiagnosticsSummary())
			logf(logger, "INFO state: mode=local (auto, S3 not configured)")
			store, err := NewLocalStore(cfg.DataDir)
			if err != nil {
				return nil, "", err
			}
			return store, appcfg.StateModeLocal, nil
		}

		logf(logger, "INFO state.s3: code=s3_ready %s", cfg.S3.DiagnosticsSummary())
		store, err := NewS3Store(cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.Bucket, cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey)
		if err != nil {
			logf(logger, "WARN state.s3: init_failed=%q, fallback=local", err.Error())
			local, lerr := NewLocalStore(cfg.DataDir)
			if lerr != nil {
				return nil, "", lerr
			}
			return local, appcfg.StateModeLocal, nil
		}

		logf(logger, "INFO state: mode=s3 (auto, configured)")
		return store, appcfg.StateModeS3, nil

	case appcfg.StateModeS3:
		if !cfg.S3.IsConfigured() {
			missing := cfg.S3.MissingRequired()
			logf(logger, "FATAL state.s3: code=s3_config_incomplete missing=%v", missing)
			logf(logger, "FATAL state.s3: %s", cfg.S3.DiagnosticsSummary())
			return nil, "", fmt.Errorf("STATE_MODE=s3 requested but missing required config: %s", strings.Join(missing, ", "))
		}

		logf(logger, "INFO state.s3: code=s3_ready %s", cfg.S3.DiagnosticsSummary())
		store, err := NewS3Store(cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.Bucket, cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey)
		if err != nil {
			return nil, "", fmt.Errorf("STATE_MODE=s3 init failed: %w", err)
		}

		logf(logger, "INFO state: mode=s3 (forced)")
		return store, appcfg.StateModeS3, nil

	default:
		return nil, "", fmt.Errorf("unsupported state mode: %s", mode)
	}
}

func logf(logger Logger, format string, v ...any) {
	if logger == nil {
		return
	}
	logger.Printf(format, v...)
}
