package events

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Publisher drivers.
const (
	DriverNone  = "none"
	DriverRedis = "redis"
	DriverKafka = "kafka"
)

// Config selects and configures the event publisher.
type Config struct {
	Driver    string      `toml:"driver"`
	Timeout   string      `toml:"timeout"`
	QueueSize int         `toml:"queue_size"`
	Redis     RedisConfig `toml:"redis"`
	Kafka     KafkaConfig `toml:"kafka"`
}

// DefaultQueueSize is the number of events buffered for background delivery.
const DefaultQueueSize = 256

// RedisConfig holds the connection and target list for the redis driver.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Key      string `toml:"key"`
}

// KafkaConfig holds the brokers and topic for the kafka driver.
type KafkaConfig struct {
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Driver        string
	Timeout       string
	QueueSize     string
	RedisAddr     string
	RedisPassword string
	RedisDB       string
	RedisKey      string
	KafkaBrokers  string
	KafkaTopic    string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Driver != "" {
		c.Driver = overlay.Driver
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.QueueSize != 0 {
		c.QueueSize = overlay.QueueSize
	}
	if overlay.Redis.Addr != "" {
		c.Redis.Addr = overlay.Redis.Addr
	}
	if overlay.Redis.Password != "" {
		c.Redis.Password = overlay.Redis.Password
	}
	if overlay.Redis.DB != 0 {
		c.Redis.DB = overlay.Redis.DB
	}
	if overlay.Redis.Key != "" {
		c.Redis.Key = overlay.Redis.Key
	}
	if len(overlay.Kafka.Brokers) > 0 {
		c.Kafka.Brokers = overlay.Kafka.Brokers
	}
	if overlay.Kafka.Topic != "" {
		c.Kafka.Topic = overlay.Kafka.Topic
	}
}

func (c *Config) loadDefaults() {
	if c.Driver == "" {
		c.Driver = DriverNone
	}
	if c.Timeout == "" {
		c.Timeout = "2s"
	}
	if c.QueueSize == 0 {
		c.QueueSize = DefaultQueueSize
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.Key == "" {
		c.Redis.Key = "intake:events"
	}
	if len(c.Kafka.Brokers) == 0 {
		c.Kafka.Brokers = []string{"localhost:9092"}
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "intake.requests"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Driver != "" {
		if v := os.Getenv(env.Driver); v != "" {
			c.Driver = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
	if env.QueueSize != "" {
		if v := os.Getenv(env.QueueSize); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.QueueSize = n
			}
		}
	}
	if env.RedisAddr != "" {
		if v := os.Getenv(env.RedisAddr); v != "" {
			c.Redis.Addr = v
		}
	}
	if env.RedisPassword != "" {
		if v := os.Getenv(env.RedisPassword); v != "" {
			c.Redis.Password = v
		}
	}
	if env.RedisDB != "" {
		if v := os.Getenv(env.RedisDB); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.Redis.DB = n
			}
		}
	}
	if env.RedisKey != "" {
		if v := os.Getenv(env.RedisKey); v != "" {
			c.Redis.Key = v
		}
	}
	if env.KafkaBrokers != "" {
		if v := os.Getenv(env.KafkaBrokers); v != "" {
			c.Kafka.Brokers = splitList(v)
		}
	}
	if env.KafkaTopic != "" {
		if v := os.Getenv(env.KafkaTopic); v != "" {
			c.Kafka.Topic = v
		}
	}
}

func (c *Config) validate() error {
	switch c.Driver {
	case DriverNone, DriverRedis, DriverKafka:
	default:
		return fmt.Errorf("unsupported driver: %s", c.Driver)
	}
	if d, err := time.ParseDuration(c.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid timeout: %s", c.Timeout)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("queue_size must be positive, got %d", c.QueueSize)
	}
	if c.Driver == DriverKafka && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers required")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
