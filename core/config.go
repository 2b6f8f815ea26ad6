package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// StorageLocal keeps all collections in the embedded bbolt database.
	StorageLocal = "local"
	// StorageRemote reads/writes collections through the portal HTTP API.
	StorageRemote = "remote"
)

type Config struct {
	Env      string
	Debug    bool
	TestMode bool
	AppName  string
	Build    string

	RollbarToken string

	Server struct {
		Host string
		Addr string
	}

	Storage struct {
		Backend string // StorageLocal | StorageRemote
		Path    string // bbolt database file (also the local mirror under StorageRemote)
	}

	API struct {
		BaseURL string
		Token   string
		Timeout time.Duration
	}
}

// NewConfig loads the app configuration from defaults, an optional
// config/.env.<env> file and environment variables (in increasing precedence).
func NewConfig() *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "FEDF-PS35 Portal")
	conf.SetDefault("build", "dev")
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddr", ":8000")
	conf.SetDefault("storageBackend", StorageLocal)
	conf.SetDefault("storagePath", filepath.Join(Getwd(), "data", "portal.db"))
	conf.SetDefault("apiBaseURL", "http://localhost:8000")
	conf.SetDefault("apiToken", "")
	conf.SetDefault("apiTimeout", 30*time.Second)
	conf.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	c := &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		RollbarToken: conf.GetString("rollbarToken"),
	}
	c.Server.Host = conf.GetString("serverHost")
	c.Server.Addr = conf.GetString("serverAddr")
	c.Storage.Backend = conf.GetString("storageBackend")
	c.Storage.Path = conf.GetString("storagePath")
	c.API.BaseURL = conf.GetString("apiBaseURL")
	c.API.Token = conf.GetString("apiToken")
	c.API.Timeout = conf.GetDuration("apiTimeout")
	return c
}
