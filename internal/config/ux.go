package config

// UIConfig holds terminal interface configuration.
type UIConfig struct {
	// Theme is "auto", "light" or "dark".
	Theme string `yaml:"theme" json:"theme,omitempty"`

	// RenderMarkdown renders the /help command card through glamour. Replies
	// are always shown as written.
	RenderMarkdown bool `yaml:"render_markdown" json:"render_markdown"`

	// WordWrap is the markdown wrap width (0 = follow the window).
	WordWrap int `yaml:"word_wrap" json:"word_wrap,omitempty"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() UIConfig {
	return UIConfig{
		Theme:          "auto",
		RenderMarkdown: true,
		WordWrap:       80,
	}
}

// ServerConfig configures the HTTP front end.
type ServerConfig struct {
	Addr       string `yaml:"addr" json:"addr,omitempty"`
	SessionTTL string `yaml:"session_ttl" json:"session_ttl,omitempty"`
}

// DefaultServerConfig returns defaults for the HTTP front end.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:       "127.0.0.1:8787",
		SessionTTL: "30m",
	}
}
