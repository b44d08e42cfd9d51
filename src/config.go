package tonekey

/*------------------------------------------------------------------
 *
 * Purpose:   	Runtime configuration for the line monitor daemon.
 *
 * Description: One small YAML file selects the phone variant and the
 *		audio parameters.  Everything that actually shapes
 *		decoding behavior lives in the calibration profile; the
 *		config only names which profile to use.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the daemon configuration, read once at startup.
type Config struct {
	Profile    string `yaml:"profile"`     // Calibration profile name, e.g. "bowie".
	SampleRate int    `yaml:"sample_rate"` // Capture rate in Hz.
	BlockSize  int    `yaml:"block_size"`  // Capture block size in samples.
	KeyLogDir  string `yaml:"key_log_dir"` // Daily CSV key logs; empty disables.
	Debug      bool   `yaml:"debug"`       // Decode-path diagnostics to stderr.
}

// DefaultConfig returns the configuration used when no file is given:
// the standard profile at the usual line capture rate.
func DefaultConfig() Config {
	return Config{
		Profile:    "standard",
		SampleRate: 44100,
		BlockSize:  512,
	}
}

/*------------------------------------------------------------------
 *
 * Name:	LoadConfig
 *
 * Purpose:	Read and validate the daemon configuration file.
 *
 * Inputs:	path	- YAML file.  Empty string means defaults.
 *
 * Description: Missing fields fall back to defaults; unknown profile
 *		names and nonsense audio parameters are rejected here so
 *		the daemon fails at startup rather than sitting silent.
 *
 *----------------------------------------------------------------*/

func LoadConfig(path string) (Config, error) {
	var cfg = DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw, readErr = os.ReadFile(path)
	if readErr != nil {
		return cfg, fmt.Errorf("reading config: %w", readErr)
	}
	if parseErr := yaml.Unmarshal(raw, &cfg); parseErr != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, parseErr)
	}

	if cfg.Profile == "" {
		cfg.Profile = "standard"
	}
	if _, profErr := ProfileByName(cfg.Profile); profErr != nil {
		return cfg, profErr
	}
	if cfg.SampleRate < 8000 {
		return cfg, fmt.Errorf("sample_rate %d is below 8000 Hz", cfg.SampleRate)
	}
	if cfg.BlockSize < 64 || cfg.BlockSize > 8192 {
		return cfg, fmt.Errorf("block_size %d outside 64..8192", cfg.BlockSize)
	}
	return cfg, nil
}
