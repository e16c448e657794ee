package config

import (
	"encoding/xml"
	"io"
	"os"
	"sync"
)

var (
	cfg  *APIConfig
	once sync.Once
)

// APIConfig represents the root element.
type APIConfig struct {
	XMLName     xml.Name      `xml:"API"`
	RequestDump bool          `xml:"REQUEST_DUMP,attr"`
	Context     ContextConfig `xml:"CONTEXT"`
	DB          DBConfig      `xml:"DB"`
	AI          AIConfig      `xml:"AI"`
	RateLimit   RateLimit     `xml:"RATE_LIMIT"`
}

// ContextConfig holds basic server settings.
type ContextConfig struct {
	Port     int    `xml:"PORT"`
	Host     string `xml:"HOST"`
	TimeZone string `xml:"TIME_ZONE"`
}

// AIConfig holds settings for the generative-AI insight provider.
// The API key itself is never kept in the XML file; it is read from the
// environment variable named by APIKeyEnv.
type AIConfig struct {
	URL            string `xml:"URL"`
	Model          string `xml:"MODEL"`
	APIKeyEnv      string `xml:"API_KEY_ENV"`
	TimeoutSeconds int    `xml:"TIMEOUT_SECONDS"`
}

// RateLimit bounds requests to the insight endpoint.
type RateLimit struct {
	RequestsPerSecond float64 `xml:"REQUESTS_PER_SECOND"`
	Burst             int     `xml:"BURST"`
}

// DBConfig holds database connection settings.
type DBConfig struct {
	Host     string       `xml:"HOST"`
	Port     int          `xml:"PORT"`
	Name     string       `xml:"NAME"`
	SSLMode  string       `xml:"SSL_MODE"`
	Username string       `xml:"USERNAME"`
	Password DBPassword   `xml:"PASSWORD"`
	Pool     DBPoolConfig `xml:"POOL"`
}

// DBPassword holds password details. TYPE="env" means the chardata names an
// environment variable holding the real password.
type DBPassword struct {
	Type  string `xml:"TYPE,attr"`
	Value string `xml:",chardata"`
}

// Resolve returns the effective password.
func (p DBPassword) Resolve() string {
	if p.Type == "env" {
		return os.Getenv(p.Value)
	}
	return p.Value
}

// DBPoolConfig holds database connection pooling settings.
type DBPoolConfig struct {
	MaxOpenConns    int `xml:"MAX_OPEN_CONNS"`
	MaxIdleConns    int `xml:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int `xml:"CONN_MAX_LIFETIME"`
}

// APIKey returns the generative-AI credential, or "" when none is configured.
func (a AIConfig) APIKey() string {
	if a.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(a.APIKeyEnv)
}

// LoadConfig loads and parses the XML configuration from the given file.
func LoadConfig(xmlPath string) (*APIConfig, error) {
	once.Do(func() {
		f, err := os.Open(xmlPath)
		if err != nil {
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return
		}

		var newCfg APIConfig
		if err := xml.Unmarshal(data, &newCfg); err != nil {
			return
		}

		cfg = &newCfg
	})

	if cfg == nil {
		return nil, os.ErrInvalid
	}
	return cfg, nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *APIConfig {
	return cfg
}
