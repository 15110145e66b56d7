// server/config/config.go
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// --- Các struct con, phản ánh cấu trúc của YAML ---

type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	DBName         string        `mapstructure:"dbName"`
	ConnectTimeout time.Duration `mapstructure:"connectTimeout"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type AuthConfig struct {
	BcryptCost int `mapstructure:"bcryptCost"`
}

// StoreConfig selects where accounts live: "mongo" or "memory".
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

// SuperuserConfig describes the account seeded on first start.
// Seeding is skipped when Password is empty.
type SuperuserConfig struct {
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Email        string `mapstructure:"email"`
	FacilityName string `mapstructure:"facilityName"`
	PhoneNum1    string `mapstructure:"phoneNum1"`
}

type LogConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// --- Struct Config chính, bao gồm tất cả các struct con ---

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Store     StoreConfig     `mapstructure:"store"`
	Superuser SuperuserConfig `mapstructure:"superuser"`
	Log       LogConfig       `mapstructure:"log"`
}

var envBindings = map[string]string{
	"server.port":            "SERVER_PORT",
	"mongo.uri":              "MONGO_URI",
	"mongo.dbName":           "MONGO_DBNAME",
	"jwt.secret":             "JWT_SECRET",
	"jwt.expiration":         "JWT_EXPIRATION",
	"auth.bcryptCost":        "BCRYPT_COST",
	"store.driver":           "STORE_DRIVER",
	"superuser.username":     "SUPERUSER_USERNAME",
	"superuser.password":     "SUPERUSER_PASSWORD",
	"superuser.email":        "SUPERUSER_EMAIL",
	"superuser.facilityName": "SUPERUSER_FACILITY_NAME",
	"superuser.phoneNum1":    "SUPERUSER_PHONE_NUM1",
	"log.development":        "LOG_DEVELOPMENT",
	"log.level":              "LOG_LEVEL",
}

// LoadConfig đọc cấu hình từ file và ghi đè bằng các biến môi trường.
// A .env file in the working directory is loaded first when present.
func LoadConfig(path string) (config Config, err error) {
	// .env is optional; variables already set in the environment win.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowedOrigins", []string{"*"})
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.dbName", "facility_accounts")
	v.SetDefault("mongo.connectTimeout", 10*time.Second)
	v.SetDefault("jwt.expiration", 24*time.Hour)
	v.SetDefault("auth.bcryptCost", 12)
	v.SetDefault("store.driver", "mongo")
	v.SetDefault("superuser.username", "admin")
	v.SetDefault("log.level", "info")

	v.AutomaticEnv()
	for key, env := range envBindings {
		if err = v.BindEnv(key, env); err != nil {
			return
		}
	}

	// Nếu file không tồn tại, Viper sẽ chỉ sử dụng các biến môi trường.
	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}

	err = config.Validate()
	return
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("config: jwt.secret is required")
	}
	switch c.Store.Driver {
	case "mongo", "memory":
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	if c.Store.Driver == "mongo" && c.Mongo.URI == "" {
		return errors.New("config: mongo.uri is required for the mongo store")
	}
	return nil
}
