package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	"relaychat/logger"
	"relaychat/tools/ids"
)

// AppConfig holds everything the gateway node needs. Values come from the
// environment with defaults suited to a local single-node run.
type AppConfig struct {
	NodeID   string `envconfig:"NODE_ID" default:"relay_gw-1"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	SnowflakeNode int64 `envconfig:"SNOWFLAKE_NODE" default:"1"`

	MongoURI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"chat-app"`
	MongoPoolSize int    `envconfig:"MONGO_POOL_SIZE" default:"20"`
	MongoMaxRetry int    `envconfig:"MONGO_MAX_RETRY" default:"3"`

	// Redis presence mirror; disabled when addr is empty.
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	PresenceTTL   time.Duration `envconfig:"PRESENCE_TTL" default:"2m"`

	SendQueueSize int `envconfig:"SEND_QUEUE_SIZE" default:"64"`
	FanoutWorkers int `envconfig:"FANOUT_WORKERS" default:"4"`
	FanoutQueue   int `envconfig:"FANOUT_QUEUE" default:"1024"`
}

// Load reads AppConfig from the environment.
func Load() (*AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("relay", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigIds seeds the snowflake generator with the configured node number.
func ConfigIds(cfg *AppConfig) {
	logger.Infof("configuring id generation node=%d", cfg.SnowflakeNode)
	ids.SetNodeID(cfg.SnowflakeNode)
}
