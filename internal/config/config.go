package config

import (
	"deployer/internal/model"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	URI         string        `mapstructure:"uri"`
	File        string        `mapstructure:"file"`
	Server      string        `mapstructure:"server"`
	Watch       bool          `mapstructure:"watch"`
	SettleDelay time.Duration `mapstructure:"settle_delay"`
	Timeout     time.Duration `mapstructure:"timeout"`
	StatusAddr  string        `mapstructure:"status_addr"`
	BufferSize  int           `mapstructure:"buffer_size"`
	Debug       bool          `mapstructure:"debug"`
}

var Default = Config{
	Server:      "http://localhost:4000",
	Watch:       true,
	SettleDelay: 100 * time.Millisecond,
	Timeout:     30 * time.Second,
	BufferSize:  100,
}

// flag name -> config key
var flagKeys = map[string]string{
	"uri":          "uri",
	"file":         "file",
	"server":       "server",
	"watch":        "watch",
	"settle-delay": "settle_delay",
	"timeout":      "timeout",
	"status-addr":  "status_addr",
	"buffer-size":  "buffer_size",
	"debug":        "debug",
}

func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("uri", "u", "", "script identifier appended to /api/scripts/ (required)")
	fs.StringP("file", "f", "", "path of the file to deploy and watch (required)")
	fs.StringP("server", "s", Default.Server, "base server URL")
	fs.BoolP("watch", "w", Default.Watch, "keep watching the file after the initial deployment")
	fs.Duration("settle-delay", Default.SettleDelay, "wait after a change before reading the file")
	fs.Duration("timeout", Default.Timeout, "HTTP request timeout")
	fs.String("status-addr", "", "serve status and history on this address (disabled when empty)")
	fs.Int("buffer-size", Default.BufferSize, "initial capacity of the change event queue")
	fs.String("config", "", "config file (default $HOME/.deployer/config.yaml)")
}

// Load merges, highest first: flags, DEPLOYER_* environment, config.yaml,
// defaults. The config file is optional unless named with --config.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("uri", "")
	v.SetDefault("file", "")
	v.SetDefault("server", Default.Server)
	v.SetDefault("watch", Default.Watch)
	v.SetDefault("settle_delay", Default.SettleDelay)
	v.SetDefault("timeout", Default.Timeout)
	v.SetDefault("buffer_size", Default.BufferSize)
	v.SetDefault("status_addr", "")
	v.SetDefault("debug", false)

	v.SetEnvPrefix("DEPLOYER")
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	explicit := ""
	if flags != nil {
		explicit, _ = flags.GetString("config")
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".deployer"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := errors.AsType[viper.ConfigFileNotFoundError](err); !ok || explicit != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.URI == "" {
		errs = append(errs, errors.New("uri is required"))
	}
	if c.File == "" {
		errs = append(errs, errors.New("file is required"))
	}
	if c.SettleDelay <= 0 {
		errs = append(errs, fmt.Errorf("settle delay must be positive, got %s", c.SettleDelay))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.BufferSize <= 0 {
		errs = append(errs, fmt.Errorf("buffer size must be positive, got %d", c.BufferSize))
	}

	return errors.Join(errs...)
}

func (c *Config) Target() model.DeployTarget {
	return model.DeployTarget{
		Server: c.Server,
		URI:    c.URI,
		File:   c.File,
	}
}
