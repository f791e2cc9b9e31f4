package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type PsqlConfig struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	Sslmode  string `mapstructure:"sslmode"`
}

type HTTPConfig struct {
	Env            string   `mapstructure:"env"`
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Config struct {
	HTTP HTTPConfig `mapstructure:"http"`
	Psql PsqlConfig `mapstructure:"psql_conn"`
}

func Load() (*Config, error) {
	// .env overrides are optional, config.yaml is the source of truth
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %s\n", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	// flat env names do not map onto nested keys on their own
	viper.BindEnv("http.env", "ENV")
	viper.BindEnv("http.port", "PORT")
	viper.BindEnv("psql_conn.user", "PSQL_USER")
	viper.BindEnv("psql_conn.password", "PSQL_PASSWORD")
	viper.BindEnv("psql_conn.host", "PSQL_HOST")
	viper.BindEnv("psql_conn.port", "PSQL_PORT")
	viper.BindEnv("psql_conn.database", "PSQL_DATABASE")
	viper.BindEnv("psql_conn.sslmode", "PSQL_SSLMODE")

	err := viper.ReadInConfig()
	if err != nil {
		log.Printf("Error reading config file, %s\n", err)
		return nil, err
	}

	var cfg Config
	err = viper.Unmarshal(&cfg)
	if err != nil {
		log.Printf("Unable to decode into struct, %v\n", err)
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Psql.User, c.Psql.Password, c.Psql.Host, c.Psql.Port, c.Psql.Database, c.Psql.Sslmode)
}
