package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	DefaultInputPath    = "./hosts.csv"
	DefaultSnapshotPath = "LMIhosts.csv"
	DefaultAPIURL       = "https://secure.logmein.com/public-api/v1"
)

// Environment variable names. The file uses the same keys in its top level.
const (
	EnvInputPath = "PATH_TO_CSV"
	EnvUsername  = "USERNAME"
	EnvPassword  = "PASSWORD"
	EnvAPIURL    = "LMI_API_URL"
)

type Config struct {
	InputPath    string
	SnapshotPath string
	APIURL       string
	Username     string
	Password     string
}

// HasCredentials reports whether both username and password are set.
func (c Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// Load reads an optional .env style file at path and overlays the process
// environment on top of it. A missing file is not an error.
//
// Besides flat KEY=value lines the file may carry a [logmein] section:
//
//	[logmein]
//	username = ...
//	password = ...
//	input    = ./hosts.csv
//	api_url  = https://...
func Load(path string) (Config, error) {
	c := Config{
		InputPath:    DefaultInputPath,
		SnapshotPath: DefaultSnapshotPath,
		APIURL:       DefaultAPIURL,
	}

	if path != "" {
		if err := c.loadFile(path); err != nil {
			return c, err
		}
	}

	c.loadEnv()
	return c, nil
}

func (c *Config) loadFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat config %s: %w", path, err)
	}

	// Bare lines such as DEBUG load as boolean keys and are ignored, like
	// dotenv does. Only "=" separates keys so URLs with ":" stay intact.
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
		AllowBooleanKeys:    true,
		KeyValueDelimiters:  "=",
	}, path)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}

	top := dotenvKeys(cfg.Section(ini.DefaultSection))
	setIf(&c.InputPath, top[EnvInputPath])
	setIf(&c.Username, top[EnvUsername])
	setIf(&c.Password, top[EnvPassword])
	setIf(&c.APIURL, top[EnvAPIURL])

	if cfg.HasSection("logmein") {
		sec := cfg.Section("logmein")
		setIf(&c.InputPath, sec.Key("input").String())
		setIf(&c.Username, sec.Key("username").String())
		setIf(&c.Password, sec.Key("password").String())
		setIf(&c.APIURL, sec.Key("api_url").String())
	}
	return nil
}

// dotenvKeys flattens the top level of a .env file, accepting shell style
// "export KEY=value" lines.
func dotenvKeys(sec *ini.Section) map[string]string {
	keys := make(map[string]string, len(sec.Keys()))
	for _, k := range sec.Keys() {
		name := strings.TrimSpace(strings.TrimPrefix(k.Name(), "export "))
		keys[name] = k.String()
	}
	return keys
}

func (c *Config) loadEnv() {
	setIf(&c.InputPath, os.Getenv(EnvInputPath))
	setIf(&c.Username, os.Getenv(EnvUsername))
	setIf(&c.Password, os.Getenv(EnvPassword))
	setIf(&c.APIURL, os.Getenv(EnvAPIURL))
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
