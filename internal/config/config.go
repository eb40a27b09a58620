package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           int    `yaml:"port"`
		BaseURL        string `yaml:"baseURL"`
		RequestBudget  int    `yaml:"requestBudgetSeconds"`
		RateLimit      int    `yaml:"rateLimit"`
		RateLimitBurst int    `yaml:"rateLimitBurst"`
	} `yaml:"server"`

	Auth struct {
		// client name -> token, checked by the bearer middleware
		Tokens map[string]string `yaml:"tokens"`
	} `yaml:"auth"`

	Database struct {
		Driver   string `yaml:"driver"` // mysql | postgres
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	Providers struct {
		Gemini struct {
			APIKey string `yaml:"apiKey"`
			Model  string `yaml:"model"`
		} `yaml:"gemini"`
		OpenAI struct {
			APIKey string `yaml:"apiKey"`
			Model  string `yaml:"model"`
		} `yaml:"openai"`
		DeepSeek struct {
			APIKey  string `yaml:"apiKey"`
			Model   string `yaml:"model"`
			BaseURL string `yaml:"baseURL"`
		} `yaml:"deepseek"`
	} `yaml:"providers"`

	Chrome struct {
		Path string `yaml:"path"`
	} `yaml:"chrome"`
}

// Load baca file config.yaml
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}
	if c.Server.RequestBudget <= 0 {
		c.Server.RequestBudget = 180
	}
	if c.Server.RateLimit > 0 && c.Server.RateLimitBurst <= 0 {
		c.Server.RateLimitBurst = c.Server.RateLimit * 2
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if c.Providers.Gemini.Model == "" {
		c.Providers.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Providers.OpenAI.Model == "" {
		c.Providers.OpenAI.Model = "gpt-4o"
	}
	if c.Providers.DeepSeek.Model == "" {
		c.Providers.DeepSeek.Model = "deepseek-chat"
	}
	if c.Providers.DeepSeek.BaseURL == "" {
		c.Providers.DeepSeek.BaseURL = "https://api.deepseek.com"
	}
}

// RequestTimeout is the end-to-end pipeline budget per request.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestBudget) * time.Second
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds a lib/pq connection string.
func (c *Config) PostgresDSN() string {
	ssl := c.Database.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		ssl,
	)
}
