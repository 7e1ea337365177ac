package config

import (
	"flag"

	"veil-go/pkg/veil"

	"github.com/spf13/viper"
)

type Config struct {
	APIListenAddr string `mapstructure:"api_listen_address"`
	LogDBFile     string `mapstructure:"log_db_file"`
	Compress      bool   `mapstructure:"compress"`
	ZstdLevel     int    `mapstructure:"zstd_level"`
	DefaultKey2   string `mapstructure:"default_key2"`
	ConfigFile    string `mapstructure:"config_file"`
}

func DefaultConfig() *Config {
	return &Config{
		APIListenAddr: ":7780",
		LogDBFile:     "veild.db",
		Compress:      false,
		ZstdLevel:     1,
		DefaultKey2:   veil.DefaultKey2,
		ConfigFile:    "veil", // config file name, without extension
	}
}

// LoadConfig loads configuration from file, environment, and flags, in
// that order of precedence.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName(cfg.ConfigFile)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/veil-go/")
	viper.AddConfigPath("$HOME/.veil-go")
	viper.SetEnvPrefix("VEIL") // VEIL_API_LISTEN_ADDRESS etc.
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found is fine; defaults apply.
	}

	flag.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Config file name (without extension)")
	flag.StringVar(&cfg.APIListenAddr, "api-listen", cfg.APIListenAddr, "API listen address")
	flag.StringVar(&cfg.LogDBFile, "log-db", cfg.LogDBFile, "SQLite log database file name")
	flag.BoolVar(&cfg.Compress, "compress", cfg.Compress, "Apply zstd compression after obfuscation")
	flag.IntVar(&cfg.ZstdLevel, "zstd-level", cfg.ZstdLevel, "Zstd encoder level (1=fastest .. 4=best)")
	flag.Parse()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
