package lib

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"3000"`
	MongoURI    string `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
	MongoDBName string `envconfig:"MONGODB_NAME" default:"feednest"`
	JWTSecret   string `envconfig:"JWT_SECRET" default:"fallback-secret-key"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9091"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("feednest", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
