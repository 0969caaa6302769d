package config

import (
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"
)

type Config struct {
	// Port Settings
	Host       string `json:"host"`       // The domain name of the server.
	ServerAddr string `json:"serverAddr"` // The address the server endpoint binds to.

	Auth struct {
		AccessTokenSecret  string `json:"accessTokenSecret"`
		RefreshTokenSecret string `json:"refreshTokenSecret"`
	} `json:"auth"`

	Postgres struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		DBName   string `json:"dbname"`
		User     string `json:"user"`
		Password string `json:"password"`
		SSLMode  string `json:"sslmode"`
		TimeZone string `json:"TimeZone"`
	} `json:"postgres"`

	SMTP struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		User     string `json:"user"`
		Password string `json:"password"`
		Sender   string `json:"sender"` // From address for workflow notices.
	} `json:"smtp"`

	// Attachment is the external blob host that resolves file references
	// stored on documents and steps.
	Attachment struct {
		Host    string `json:"host"`    // Base URL of the document-hosting service.
		Timeout int    `json:"timeout"` // Request timeout in seconds.
	} `json:"attachment"`

	// Reminder controls the stale-pending sweep.
	Reminder struct {
		Spec        string `json:"spec"`        // Cron spec, e.g. "0 8 * * *".
		PendingDays int    `json:"pendingDays"` // Days before a pending document is nagged about.
	} `json:"reminder"`
}

var (
	once   sync.Once
	config *Config
)

func GetConfig() *Config {
	once.Do(func() {
		config = initConfig()
	})
	return config
}

func IsDebugMode() bool {
	return gin.Mode() == gin.DebugMode
}

// initConfig reads the configuration file. In debug mode it reads the
// debug-config.yaml file (path overridable via SARABUN_DEBUG_CONFIG_PATH),
// otherwise the config.yaml mounted from the ConfigMap.
func initConfig() *Config {
	config := &Config{}
	var configPath string
	if IsDebugMode() {
		if os.Getenv("SARABUN_DEBUG_CONFIG_PATH") != "" {
			configPath = os.Getenv("SARABUN_DEBUG_CONFIG_PATH")
		} else {
			configPath = "./etc/debug-config.yaml"
		}
	} else {
		configPath = "/etc/config/config.yaml"
	}
	klog.Info("config path: ", configPath)

	err := readConfig(configPath, config)
	if err != nil {
		klog.Error("init config", err)
		panic(err)
	}
	return config
}

func readConfig(filePath string, config *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return err
	}
	return nil
}
