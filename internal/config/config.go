package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	ServeAddress   string `envconfig:"serve_address" default:":8080"`
	MySQLDSN       string `envconfig:"mysql_dsn" default:"root:root@tcp(localhost:3306)/warehouse?parseTime=true"`
	RedisAddress   string `envconfig:"redis_address" default:"localhost:6379"`
	MigrationsPath string `envconfig:"migrations_path" default:"migrations"`
}

func Load() (*Config, error) {
	c := new(Config)
	if err := envconfig.Process("warehouse", c); err != nil {
		return nil, err
	}
	return c, nil
}
