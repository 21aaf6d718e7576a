package config

import "fsbot/internal/files"

// WorkspaceConfig controls the filesystem layer the assistant operates on.
type WorkspaceConfig struct {
	// Root is the starting current directory ("." = process working directory).
	Root string `yaml:"root" json:"root,omitempty"`
	// SearchCacheTTL bounds how long a directory listing is reused for searches.
	// Zero walks the tree on every search.
	SearchCacheTTL string `yaml:"search_cache_ttl" json:"search_cache_ttl,omitempty"`
	// Watch enables fsnotify invalidation of the listing cache.
	Watch bool `yaml:"watch" json:"watch"`
	// IncludeHidden keeps dot-prefixed entries in search results.
	IncludeHidden bool `yaml:"include_hidden" json:"include_hidden"`
	// IgnorePatterns skips matching directory names while indexing.
	IgnorePatterns []string `yaml:"ignore_patterns" json:"ignore_patterns,omitempty"`
}

// DefaultWorkspaceConfig returns defaults for the filesystem layer.
func DefaultWorkspaceConfig() WorkspaceConfig {
	return WorkspaceConfig{
		Root:           ".",
		SearchCacheTTL: "0s",
		Watch:          true,
		IncludeHidden:  true,
	}
}

// FileOptions converts the workspace section into filesystem options.
func (c *Config) FileOptions() files.Options {
	return files.Options{
		Root:           c.Workspace.Root,
		CacheTTL:       c.GetSearchCacheTTL(),
		Watch:          c.Workspace.Watch,
		IncludeHidden:  c.Workspace.IncludeHidden,
		IgnorePatterns: c.Workspace.IgnorePatterns,
	}
}
