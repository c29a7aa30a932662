package config

import (
	"github.com/spf13/viper"

	"github.com/Malcolmdotpeewhy/folderflatten/internal"
)

type Config struct {
	Database struct {
		Path string
	}
	Flatten struct {
		Mode          string
		ArchiveFolder string `mapstructure:"archive_folder"`
	}
	Logging struct {
		Level string
		File  string
	}
}

var cfg Config

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath("$HOME/.folderflatten")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/folderflatten")

	viper.SetDefault("database.path", internal.DefaultDatabasePath)
	viper.SetDefault("flatten.mode", string(internal.ModeRename))
	viper.SetDefault("flatten.archive_folder", internal.DefaultArchiveFolderName)
	viper.SetDefault("logging.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func Get() *Config {
	return &cfg
}
