package proctop

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime settings read through viper
type Config struct {
	Interval time.Duration
	Limit    int
	Once     bool
	LogFile  string
	Metrics  bool
}

// SetDefaults registers a default for every key LoadConfig reads
func SetDefaults(v *viper.Viper) {
	v.SetDefault("interval", UpdateDuration())
	v.SetDefault("limit", TOP_N)
	v.SetDefault("once", false)
	v.SetDefault("log_file", "")
	v.SetDefault("metrics", false)
}

// configExtensions are the only file names ReadConfigFile accepts. Anything
// else called proctop, like the binary itself, is never read.
var configExtensions = []string{".yaml", ".yml"}

// ReadConfigFile loads proctop.yaml (or proctop.yml) from the first dir that
// has one. A missing file is fine.
func ReadConfigFile(v *viper.Viper, dirs ...string) error {
	path, ok := findConfigFile(dirs)
	if !ok {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

func findConfigFile(dirs []string) (string, bool) {
	for _, dir := range dirs {
		for _, ext := range configExtensions {
			path := filepath.Join(dir, "proctop"+ext)
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				return path, true
			}
		}
	}
	return "", false
}

// LoadConfig validates the viper settings and returns them as a Config
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		Interval: v.GetDuration("interval"),
		Limit:    v.GetInt("limit"),
		Once:     v.GetBool("once"),
		LogFile:  v.GetString("log_file"),
		Metrics:  v.GetBool("metrics"),
	}

	if cfg.Interval <= 0 {
		return cfg, fmt.Errorf("interval must be positive, got %q", v.GetString("interval"))
	}
	if cfg.Limit <= 0 {
		return cfg, fmt.Errorf("limit must be positive, got %d", cfg.Limit)
	}
	return cfg, nil
}
