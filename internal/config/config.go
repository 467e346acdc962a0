package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	configDirName  = ".config/notecheck"
	configFileName = "config.json"
	tokenFileName  = "evernote_token.json"
)

const (
	defaultNotionBaseURL = "https://api.notion.com/v1"
	defaultNotionVersion = "2025-09-03"
	defaultCallbackURL   = "http://127.0.0.1:8765/callback"
	defaultListenAddr    = "127.0.0.1:8765"
)

type Config struct {
	Notion   NotionConfig   `json:"notion,omitempty"`
	Evernote EvernoteConfig `json:"evernote,omitempty"`
}

type NotionConfig struct {
	BaseURL string `json:"base_url,omitempty"`
	Version string `json:"version,omitempty"`
	Token   string `json:"token,omitempty"`
}

type EvernoteConfig struct {
	ConsumerKey    string `json:"consumer_key,omitempty"`
	ConsumerSecret string `json:"consumer_secret,omitempty"`
	CallbackURL    string `json:"callback_url,omitempty"`
	ListenAddr     string `json:"listen_addr,omitempty"`
}

func Default() Config {
	return Config{
		Notion: NotionConfig{
			BaseURL: defaultNotionBaseURL,
			Version: defaultNotionVersion,
		},
		Evernote: EvernoteConfig{
			CallbackURL: defaultCallbackURL,
			ListenAddr:  defaultListenAddr,
		},
	}
}

// Load reads the config file (if present) and applies environment overrides.
func Load() (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return cfg, err
	}

	applyEnvOverrides(&cfg)
	normalize(&cfg)
	return cfg, nil
}

// LoadFile reads the config file only, without environment overrides. Used
// when reporting where a value comes from.
func LoadFile() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, err
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}

	normalize(&cfg)
	return cfg, nil
}

// Save writes cfg to the config file, merging over any keys already present
// that this version of the tool does not know about.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	normalize(&cfg)

	merged := map[string]any{}
	if existing, err := os.ReadFile(path); err == nil {
		if len(existing) > 0 {
			if err := json.Unmarshal(existing, &merged); err != nil {
				return err
			}
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	notionMap := subMap(merged, "notion")
	notionMap["base_url"] = cfg.Notion.BaseURL
	notionMap["version"] = cfg.Notion.Version
	setOrDelete(notionMap, "token", cfg.Notion.Token)
	merged["notion"] = notionMap

	evernoteMap := subMap(merged, "evernote")
	setOrDelete(evernoteMap, "consumer_key", cfg.Evernote.ConsumerKey)
	setOrDelete(evernoteMap, "consumer_secret", cfg.Evernote.ConsumerSecret)
	evernoteMap["callback_url"] = cfg.Evernote.CallbackURL
	evernoteMap["listen_addr"] = cfg.Evernote.ListenAddr
	merged["evernote"] = evernoteMap

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// TokenPath is the Evernote OAuth token file, kept next to the config file.
func TokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, tokenFileName), nil
}

func applyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if s := os.Getenv("NOTION_BASE_URL"); s != "" {
		cfg.Notion.BaseURL = s
	}
	if s := os.Getenv("NOTION_VERSION"); s != "" {
		cfg.Notion.Version = s
	}
	if s := os.Getenv("NOTION_TOKEN"); s != "" {
		cfg.Notion.Token = s
	}
	if s := os.Getenv("EVERNOTE_CONSUMER_KEY"); s != "" {
		cfg.Evernote.ConsumerKey = s
	}
	if s := os.Getenv("EVERNOTE_CONSUMER_SECRET"); s != "" {
		cfg.Evernote.ConsumerSecret = s
	}
	if s := os.Getenv("EVERNOTE_CALLBACK_URL"); s != "" {
		cfg.Evernote.CallbackURL = s
	}
}

func normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Notion.BaseURL = strings.TrimSpace(cfg.Notion.BaseURL)
	if cfg.Notion.BaseURL == "" {
		cfg.Notion.BaseURL = defaultNotionBaseURL
	}
	cfg.Notion.BaseURL = strings.TrimRight(cfg.Notion.BaseURL, "/")

	cfg.Notion.Version = strings.TrimSpace(cfg.Notion.Version)
	if cfg.Notion.Version == "" {
		cfg.Notion.Version = defaultNotionVersion
	}
	cfg.Notion.Token = strings.TrimSpace(cfg.Notion.Token)

	cfg.Evernote.ConsumerKey = strings.TrimSpace(cfg.Evernote.ConsumerKey)
	cfg.Evernote.ConsumerSecret = strings.TrimSpace(cfg.Evernote.ConsumerSecret)
	cfg.Evernote.CallbackURL = strings.TrimSpace(cfg.Evernote.CallbackURL)
	if cfg.Evernote.CallbackURL == "" {
		cfg.Evernote.CallbackURL = defaultCallbackURL
	}
	cfg.Evernote.ListenAddr = strings.TrimSpace(cfg.Evernote.ListenAddr)
	if cfg.Evernote.ListenAddr == "" {
		cfg.Evernote.ListenAddr = defaultListenAddr
	}
}

func subMap(parent map[string]any, key string) map[string]any {
	out := map[string]any{}
	if existing, ok := parent[key].(map[string]any); ok {
		for k, v := range existing {
			out[k] = v
		}
	}
	return out
}

func setOrDelete(m map[string]any, key, value string) {
	if value == "" {
		delete(m, key)
		return
	}
	m[key] = value
}
