package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the application configuration, read from config.toml next to
// the executable with environment overrides layered on top.
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Import ImportConfig `toml:"import"`
	Notify NotifyConfig `toml:"notify"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig storage settings
type DataConfig struct {
	DataDir string `toml:"data_dir"`
	DBFile  string `toml:"db_file"`
}

// ImportConfig anomaly-gate plausibility band, in rupiah
type ImportConfig struct {
	MinPlausiblePrice int64 `toml:"min_plausible_price"`
	MaxPlausiblePrice int64 `toml:"max_plausible_price"`
}

// NotifyConfig optional change-notification channel
type NotifyConfig struct {
	RedisURL string `toml:"redis_url"`
	Channel  string `toml:"channel"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    8980,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
			DBFile:  "hargapangan.db",
		},
		Import: ImportConfig{
			MinPlausiblePrice: 200,
			MaxPlausiblePrice: 1_000_000,
		},
		Notify: NotifyConfig{
			Channel: "hargapangan:prices",
		},
	}
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig loads config.toml from the executable's directory.
// A missing file means defaults. Environment variables win over the file.
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnv(config)
	return config, nil
}

// applyEnv layers .env and the process environment over the file config.
func applyEnv(config *AppConfig) {
	_ = godotenv.Load()

	if v := os.Getenv("HARGAPANGAN_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("HARGAPANGAN_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		config.Notify.RedisURL = v
	}
	if v := os.Getenv("HARGAPANGAN_NOTIFY_CHANNEL"); v != "" {
		config.Notify.Channel = v
	}
}

// SaveConfig writes the configuration back to config.toml.
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir makes sure the data directory and its upload area exist.
// Relative paths resolve against the executable's directory.
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Join(dataDir, "uploads"), 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// DBPath returns the SQLite database file path inside the data directory.
func DBPath(config *AppConfig, dataDir string) string {
	return filepath.Join(dataDir, config.Data.DBFile)
}

// UploadPath returns a path inside the uploads area of the data directory.
func UploadPath(dataDir, filename string) string {
	return filepath.Join(dataDir, "uploads", filename)
}
