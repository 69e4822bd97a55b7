package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	SourceArchive = "archive"
	SourceJSON    = "json"
	SourceRSS     = "rss"

	DefaultTemplate           = "[Good morning]({url}) {emoji}"
	DefaultArchiveURLTemplate = "https://workchronicles.com/comics/page/{page}"
	DefaultJSONFeedURL        = "https://workchronicles.substack.com/api/v1/archive?sort=new&limit=50"
	DefaultRSSFeedURL         = "https://workchronicles.com/feed/"
)

type Config struct {
	Source           string   `yaml:"source"`
	GreetingTemplate string   `yaml:"greeting_template"`
	Emojis           []string `yaml:"emojis"`

	Paste        bool   `yaml:"paste"`
	PasteDelayMS int    `yaml:"paste_delay_ms"`
	OpenBrowser  bool   `yaml:"open_browser"`
	SaveDir      string `yaml:"save_dir"`

	Debug   bool   `yaml:"debug"`
	LogFile string `yaml:"log_file"`

	TimeoutSeconds   int    `yaml:"timeout_seconds"`
	UserAgent        string `yaml:"user_agent"`
	Cookie           string `yaml:"cookie"`
	CookieFile       string `yaml:"cookie_file"`
	CloudflareBypass bool   `yaml:"cloudflare_bypass"`

	ArchiveURLTemplate string `yaml:"archive_url_template"`
	JSONFeedURL        string `yaml:"json_feed_url"`
	RSSFeedURL         string `yaml:"rss_feed_url"`
}

// Options carries CLI overrides. Booleans that default to true in the
// config are expressed as "No..." switches.
type Options struct {
	IgnoreConfig     bool
	Debug            bool
	Source           string
	GreetingTemplate string
	Emojis           []string
	NoPaste          bool
	NoOpen           bool
	SaveDir          string
	UserAgent        string
	Cookie           string
	CookieFile       string
}

func DefaultConfig() *Config {
	return &Config{
		Source:             SourceArchive,
		GreetingTemplate:   DefaultTemplate,
		Emojis:             []string{":wave:"},
		Paste:              true,
		PasteDelayMS:       200,
		OpenBrowser:        true,
		TimeoutSeconds:     30,
		ArchiveURLTemplate: DefaultArchiveURLTemplate,
		JSONFeedURL:        DefaultJSONFeedURL,
		RSSFeedURL:         DefaultRSSFeedURL,
	}
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *Config) PasteDelay() time.Duration {
	return time.Duration(c.PasteDelayMS) * time.Millisecond
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// fields missing from the file keep their defaults
	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	path := ConfigPath()
	cfg, err := loadYAML(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", path, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, path, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.Source != "" {
		c.Source = o.Source
	}
	if o.GreetingTemplate != "" {
		c.GreetingTemplate = o.GreetingTemplate
	}
	if len(o.Emojis) > 0 {
		c.Emojis = o.Emojis
	}
	if o.NoPaste {
		c.Paste = false
	}
	if o.NoOpen {
		c.OpenBrowser = false
	}
	if o.SaveDir != "" {
		c.SaveDir = o.SaveDir
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
}

func normalizeDefaults(c *Config) {
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	if c.Source == "" {
		c.Source = SourceArchive
	}
	if c.GreetingTemplate == "" {
		c.GreetingTemplate = DefaultTemplate
	}
	if len(c.Emojis) == 0 {
		c.Emojis = []string{":wave:"}
	}
	if c.PasteDelayMS < 0 {
		c.PasteDelayMS = 0
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	if c.ArchiveURLTemplate == "" {
		c.ArchiveURLTemplate = DefaultArchiveURLTemplate
	}
	if c.JSONFeedURL == "" {
		c.JSONFeedURL = DefaultJSONFeedURL
	}
	if c.RSSFeedURL == "" {
		c.RSSFeedURL = DefaultRSSFeedURL
	}
}

func (c *Config) Print(w io.Writer) {
	fmt.Fprintf(w, " -source: %s\n", c.Source)
	fmt.Fprintf(w, " -greeting_template: %s\n", c.GreetingTemplate)
	fmt.Fprintf(w, " -emojis: %s\n", strings.Join(c.Emojis, ", "))
	fmt.Fprintf(w, " -paste: %t\n", c.Paste)
	if c.Paste {
		fmt.Fprintf(w, " -paste_delay_ms: %d\n", c.PasteDelayMS)
	}
	fmt.Fprintf(w, " -open_browser: %t\n", c.OpenBrowser)
	if c.SaveDir != "" {
		fmt.Fprintf(w, " -save_dir: %s\n", c.SaveDir)
	}
	if c.Debug {
		fmt.Fprintf(w, " -debug: %t\n", c.Debug)
	}
	if c.LogFile != "" {
		fmt.Fprintf(w, " -log_file: %s\n", c.LogFile)
	}
	fmt.Fprintf(w, " -timeout_seconds: %d\n", c.TimeoutSeconds)
	if c.UserAgent != "" {
		fmt.Fprintf(w, " -user_agent: %s\n", c.UserAgent)
	}
	if c.CookieFile != "" {
		fmt.Fprintf(w, " -cookie_file: %s\n", c.CookieFile)
	}
	if c.CloudflareBypass {
		fmt.Fprintf(w, " -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
	fmt.Fprintf(w, " -archive_url_template: %s\n", c.ArchiveURLTemplate)
	fmt.Fprintf(w, " -json_feed_url: %s\n", c.JSONFeedURL)
	fmt.Fprintf(w, " -rss_feed_url: %s\n", c.RSSFeedURL)
}
