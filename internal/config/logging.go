package config

import (
	"github.com/stateledger/budgetextract/internal/logging"
)

// ToLoggingConfig converts the persisted LoggingConfig into the
// logging.Config shape the logging package's constructors expect,
// deriving Output from whether File is set.
func (l LoggingConfig) ToLoggingConfig() logging.Config {
	output := "stderr"
	if l.File != "" {
		output = "file"
	}
	return logging.Config{
		Level:  l.Level,
		Format: l.Format,
		Output: output,
		File:   l.File,
	}
}

// GetLoggingConfig returns the logging.Config derived from the global
// configuration's Logging section.
func GetLoggingConfig() logging.Config {
	cfg := GetGlobalConfig()
	return cfg.Logging.ToLoggingConfig()
}
