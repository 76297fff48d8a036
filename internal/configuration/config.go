package configuration

import (
	"encoding/json"
	"os"

	"github.com/joho/godotenv"
)

type MongoConfig struct {
	Uri                     string `json:"uri"`
	Database                string `json:"database"`
	UsersCollection         string `json:"usersCollection"`
	ConversationsCollection string `json:"conversationsCollection"`
	MessagesCollection      string `json:"messagesCollection"`
	SocketRoute             string `json:"socketRoute"`
}

type ServerConfig struct {
	AppPort        int      `json:"app_port"`
	SocketPort     int      `json:"socket_port"`
	AllowedOrigins []string `json:"allowed_origins"`
}

type AuthConfig struct {
	JwtSecret       string `json:"jwt_secret"`
	TokenTTLSeconds int    `json:"token_ttl_seconds"`
}

type Config struct {
	Mongo  MongoConfig  `json:"mongo"`
	Server ServerConfig `json:"server"`
	Auth   AuthConfig   `json:"auth"`
}

// LoadConfig reads the JSON config file. A .env file, when present,
// seeds the environment first; CHATLINE_MONGO_URI and CHATLINE_JWT_SECRET
// override the file so secrets stay out of it.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	err = json.Unmarshal(file, &config)
	if err != nil {
		return nil, err
	}

	if uri := os.Getenv("CHATLINE_MONGO_URI"); uri != "" {
		config.Mongo.Uri = uri
	}
	if secret := os.Getenv("CHATLINE_JWT_SECRET"); secret != "" {
		config.Auth.JwtSecret = secret
	}
	if config.Auth.JwtSecret == "" {
		config.Auth.JwtSecret = "THIS_IS_A_JWT_SECRET_KEY"
	}
	if config.Auth.TokenTTLSeconds <= 0 {
		config.Auth.TokenTTLSeconds = 84600
	}

	return &config, nil
}

// ConfigPath resolves the config file location from the environment,
// defaulting next to the binary.
func ConfigPath() string {
	if path := os.Getenv("CHATLINE_CONFIG"); path != "" {
		return path
	}
	return "config.json"
}
