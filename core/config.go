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

type (
	ServerConfig struct {
		Host                      string
		Port                      string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	BackupConfig struct {
		Enabled  bool
		FileName string
		// Google Drive API endpoints; overridable for tests.
		MetaURL   string
		UploadURL string
	}

	Config struct {
		Env       string
		Build     string
		AppName   string
		Debug     bool
		TestMode  bool
		SecretKey []byte
		WorkDir   string
		// DataDir holds the persisted document, operator and session files.
		DataDir string

		Server ServerConfig
		Backup BackupConfig

		RollbarToken string
	}
)

// NewConfig loads configuration from defaults, an optional config/.env.<env>
// file and environment variables.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Smart Report Mahasina")
	conf.SetDefault("secretKey", "w3=kf$1p&bqv!d-reports+mahasina#(daqwah)z8y@x0")
	conf.SetDefault("dataDir", filepath.Join(Getwd(), "data"))
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverPort", "8000")
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	conf.SetDefault("backupEnabled", false)
	conf.SetDefault("backupFileName", "mahasina_backup.json")
	conf.SetDefault("backupMetaURL", "https://www.googleapis.com/drive/v3")
	conf.SetDefault("backupUploadURL", "https://www.googleapis.com/upload/drive/v3")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("build", "dev")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
		conf.SetDefault("debug", false)
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

	return &Config{
		Env:       env,
		Build:     conf.GetString("build"),
		AppName:   conf.GetString("appName"),
		Debug:     conf.GetBool("debug"),
		TestMode:  conf.GetBool("testMode"),
		SecretKey: []byte(conf.GetString("secretKey")),
		WorkDir:   Getwd(),
		DataDir:   conf.GetString("dataDir"),
		Server: ServerConfig{
			Host:                      conf.GetString("serverHost"),
			Port:                      conf.GetString("serverPort"),
			JWTExpirationDelta:        conf.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: conf.GetDuration("jwtRefreshExpirationDelta"),
		},
		Backup: BackupConfig{
			Enabled:   conf.GetBool("backupEnabled"),
			FileName:  conf.GetString("backupFileName"),
			MetaURL:   conf.GetString("backupMetaURL"),
			UploadURL: conf.GetString("backupUploadURL"),
		},
		RollbarToken: conf.GetString("rollbarToken"),
	}
}

func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("config.os.Getwd: %v", err)
	}
	return wd
}
