package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
)

const configDir = ".triphelix"
const configFile = "config.json"

// DefaultServer is the backend address used when nothing else is configured.
const DefaultServer = "http://localhost:8000"

type Config struct {
	Server    string `json:"server,omitempty" validate:"omitempty,http_url"`
	SessionID string `json:"session_id,omitempty" validate:"omitempty,max=128"`
	ExportDir string `json:"export_dir,omitempty"`
	LogFile   string `json:"log_file,omitempty"`
	Debug     bool   `json:"debug,omitempty"`
	Profile   string `json:"-"`
}

func configPath(profile string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", oops.In("config").Errorf("cannot find home directory: %w", err)
	}
	filename := configFile
	if profile != "" {
		filename = fmt.Sprintf("config-%s.json", profile)
	}
	return filepath.Join(home, configDir, filename), nil
}

// Load reads the profile's config file. A missing file is not an error.
// Environment overrides are not applied here so that Save never persists them.
func Load(profile string) (*Config, error) {
	path, err := configPath(profile)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{Profile: profile}, nil
		}
		return nil, oops.In("config").Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, oops.In("config").Errorf("parsing config: %w", err)
	}
	cfg.Profile = profile
	return &cfg, nil
}

// ApplyEnv overlays TRIPHELIX_* environment variables on top of file values.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv("TRIPHELIX_SERVER"); ok && v != "" {
		c.Server = v
	}
	if v, ok := os.LookupEnv("TRIPHELIX_SESSION_ID"); ok && v != "" {
		c.SessionID = v
	}
	if v, ok := os.LookupEnv("TRIPHELIX_EXPORT_DIR"); ok && v != "" {
		c.ExportDir = v
	}
	if v, ok := os.LookupEnv("TRIPHELIX_LOG_FILE"); ok && v != "" {
		c.LogFile = v
	}
	if v, ok := os.LookupEnv("TRIPHELIX_DEBUG"); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			c.Debug = true
		case "0", "false", "no", "off":
			c.Debug = false
		}
	}
}

func (c *Config) Save() error {
	path, err := configPath(c.Profile)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return oops.In("config").Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return oops.In("config").Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return oops.In("config").Errorf("writing config: %w", err)
	}
	return nil
}

// ServerURL returns the configured server without a trailing slash,
// falling back to DefaultServer.
func (c *Config) ServerURL() string {
	if c.Server == "" {
		return DefaultServer
	}
	return strings.TrimRight(c.Server, "/")
}

// ExportPath resolves name against ExportDir unless it is already absolute.
func (c *Config) ExportPath(name string) string {
	if filepath.IsAbs(name) || c.ExportDir == "" {
		return name
	}
	return filepath.Join(c.ExportDir, name)
}

func (c *Config) profileFlag() string {
	if c.Profile == "" {
		return ""
	}
	return " --profile " + c.Profile
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return oops.In("config").Errorf("invalid configuration (fix with: triphelix%s set server <url>): %w", c.profileFlag(), err)
	}
	return nil
}

func ListProfiles() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, oops.In("config").Errorf("cannot find home directory: %w", err)
	}
	dir := filepath.Join(home, configDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, oops.In("config").Errorf("reading config directory: %w", err)
	}
	var profiles []string
	for _, e := range entries {
		name := e.Name()
		if name == configFile {
			profiles = append(profiles, "default")
			continue
		}
		if strings.HasPrefix(name, "config-") && strings.HasSuffix(name, ".json") {
			profiles = append(profiles, strings.TrimSuffix(strings.TrimPrefix(name, "config-"), ".json"))
		}
	}
	return profiles, nil
}

func ProfileName(profile string) string {
	if profile == "" {
		return "default"
	}
	return profile
}
