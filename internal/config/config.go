package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Twitter  TwitterConfig
	OpenAI   OpenAIConfig
	JWT      JWTConfig
}

type ServerConfig struct {
	Port int
	Env  string // "development", "production"
}

type DatabaseConfig struct {
	Host    string
	Port    string
	Name    string
	User    string
	Pass    string
	Charset string
}

type RedisConfig struct {
	Addr string
	Pass string
	DB   int
}

type TwitterConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
	EmbedAPIURL  string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// Load reads configuration from .env file and environment variables.
func Load() (*Config, error) {
	// Load .env file (ignore error if missing)
	_ = godotenv.Load()

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("APP_PORT", 8080)
	viper.SetDefault("APP_ENV", "production")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "3306")
	viper.SetDefault("DB_CHARSET", "utf8mb4")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("TWITTER_EMBED_API_URL", "https://publish.twitter.com/oembed")
	viper.SetDefault("OPENAI_MODEL", "gpt-3.5-turbo-16k")
	viper.SetDefault("JWT_EXPIRY", "720h")

	expiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY"))
	if err != nil {
		expiry = 30 * 24 * time.Hour
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Database: DatabaseConfig{
			Host:    viper.GetString("DB_HOST"),
			Port:    viper.GetString("DB_PORT"),
			Name:    viper.GetString("DB_NAME"),
			User:    viper.GetString("DB_USER"),
			Pass:    viper.GetString("DB_PASS"),
			Charset: viper.GetString("DB_CHARSET"),
		},
		Redis: RedisConfig{
			Addr: viper.GetString("REDIS_ADDR"),
			Pass: viper.GetString("REDIS_PASS"),
			DB:   viper.GetInt("REDIS_DB"),
		},
		Twitter: TwitterConfig{
			ClientID:     viper.GetString("OAUTH_CLIENT_ID"),
			ClientSecret: viper.GetString("OAUTH_CLIENT_SECRET"),
			CallbackURL:  viper.GetString("OAUTH_CALLBACK_URL"),
			EmbedAPIURL:  viper.GetString("TWITTER_EMBED_API_URL"),
		},
		OpenAI: OpenAIConfig{
			APIKey: viper.GetString("OPENAI_API_KEY"),
			Model:  viper.GetString("OPENAI_MODEL"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET_KEY"),
			Expiry: expiry,
		},
	}

	if cfg.Database.Name == "" {
		log.Println("WARNING: DB_NAME is not set")
	}
	if cfg.Twitter.ClientID == "" {
		log.Println("WARNING: OAUTH_CLIENT_ID is not set")
	}
	if cfg.OpenAI.APIKey == "" {
		log.Println("WARNING: OPENAI_API_KEY is not set")
	}

	return cfg, nil
}

// DSN returns the MySQL DSN string for GORM.
func (d *DatabaseConfig) DSN() string {
	return d.User + ":" + d.Pass + "@tcp(" + d.Host + ":" + d.Port + ")/" + d.Name + "?charset=" + d.Charset + "&parseTime=True&loc=Local"
}
