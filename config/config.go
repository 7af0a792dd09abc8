package config

import "github.com/ilyakaznacheev/cleanenv"

type Config struct {
	Port    string `env:"PORT" env-default:"4000"`
	DataDir string `env:"DATA_DIR" env-default:"data"`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
