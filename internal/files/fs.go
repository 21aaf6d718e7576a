// Package files is the filesystem layer fsbot operates on: a current
// directory plus create, delete, read and name search relative to it.
package files

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fsbot/internal/logging"
)

// FileSystem is the set of operations the assistant can dispatch to.
type FileSystem interface {
	CreateFile(ctx context.Context, name string) error
	DeleteFile(ctx context.Context, name string) error
	ReadFile(ctx context.Context, path string) (string, error)
	SearchFiles(ctx context.Context, query string) ([]string, error)
	CurrentDirectory() string
	SetCurrentDirectory(path string) error
}

// Options configures a Local filesystem.
type Options struct {
	Root           string
	CacheTTL       time.Duration
	Watch          bool
	IncludeHidden  bool
	IgnorePatterns []string
}

// Local is a FileSystem backed by the operating system. It is owned by one
// session and is not safe for concurrent use, apart from its Index.
type Local struct {
	cwd     string
	index   *Index
	watcher *Watcher
}

var _ FileSystem = (*Local)(nil)

// NewLocal creates a Local rooted at opts.Root. When opts.Watch is set the
// search index is invalidated by filesystem events until Close is called.
func NewLocal(ctx context.Context, opts Options) (*Local, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, newError("chdir", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, newError("chdir", root, err)
	}
	if !info.IsDir() {
		return nil, &Error{Op: "chdir", Name: root, Err: ErrInvalidDirectory}
	}

	l := &Local{
		cwd:   abs,
		index: NewIndex(opts.CacheTTL, opts.IncludeHidden, opts.IgnorePatterns),
	}

	if opts.Watch {
		w, err := NewWatcher(l.index)
		if err != nil {
			// Degrade to TTL-only invalidation.
			logging.Get(logging.CategoryWorld).Warn("fsnotify unavailable, relying on cache TTL: %v", err)
		} else if err := w.Start(ctx, abs); err != nil {
			w.Stop()
		} else {
			l.watcher = w
		}
	}

	logging.World("filesystem rooted at %s (watch=%v)", abs, l.watcher != nil)
	return l, nil
}

// Close releases the index and watcher.
func (l *Local) Close() {
	if l.watcher != nil {
		l.watcher.Stop()
	}
	l.index.Close()
}

// Index exposes the search index.
func (l *Local) Index() *Index {
	return l.index
}

// resolve makes name absolute relative to the current directory.
func (l *Local) resolve(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(l.cwd, name)
}

// CreateFile creates an empty file. An existing file is an error, so
// content is never truncated.
func (l *Local) CreateFile(ctx context.Context, name string) error {
	if name == "" {
		return &Error{Op: "create", Err: ErrEmptyName}
	}
	path := l.resolve(name)
	logging.ToolsDebug("create_file: path=%s", path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return newError("create", name, err)
	}
	if err := f.Close(); err != nil {
		return newError("create", name, err)
	}

	l.index.Invalidate()
	logging.Tools("create_file completed: %s", path)
	return nil
}

// DeleteFile removes a file. Directories are refused.
func (l *Local) DeleteFile(ctx context.Context, name string) error {
	if name == "" {
		return &Error{Op: "delete", Err: ErrEmptyName}
	}
	path := l.resolve(name)
	logging.ToolsDebug("delete_file: path=%s", path)

	info, err := os.Stat(path)
	if err != nil {
		return newError("delete", name, err)
	}
	if info.IsDir() {
		return &Error{Op: "delete", Name: name, Err: ErrIsDirectory}
	}
	if err := os.Remove(path); err != nil {
		return newError("delete", name, err)
	}

	l.index.Invalidate()
	logging.Tools("delete_file completed: %s", path)
	return nil
}

// ReadFile returns the file's content as text.
func (l *Local) ReadFile(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", &Error{Op: "read", Err: ErrEmptyName}
	}
	path := l.resolve(name)
	logging.ToolsDebug("read_file: path=%s", path)

	info, err := os.Stat(path)
	if err != nil {
		return "", newError("read", name, err)
	}
	if info.IsDir() {
		return "", &Error{Op: "read", Name: name, Err: ErrIsDirectory}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", newError("read", name, err)
	}

	logging.Tools("read_file completed: %s (%d bytes)", path, len(content))
	return string(content), nil
}

// SearchFiles returns every path under the current directory whose base name
// contains query, ignoring case. Result order is not stable.
func (l *Local) SearchFiles(ctx context.Context, query string) ([]string, error) {
	if _, err := os.Stat(l.cwd); err != nil {
		return nil, newError("search", l.cwd, err)
	}

	entries, err := l.index.Entries(ctx, l.cwd)
	if err != nil {
		return nil, newError("search", l.cwd, err)
	}

	needle := strings.ToLower(query)
	var results []string
	for _, p := range entries {
		if strings.Contains(strings.ToLower(filepath.Base(p)), needle) {
			results = append(results, p)
		}
	}

	logging.Tools("search_files %q: %d of %d entries", query, len(results), len(entries))
	return results, nil
}

// CurrentDirectory returns the absolute current directory.
func (l *Local) CurrentDirectory() string {
	return l.cwd
}

// SetCurrentDirectory changes the current directory. Relative paths resolve
// against the existing current directory.
func (l *Local) SetCurrentDirectory(path string) error {
	if path == "" {
		return &Error{Op: "chdir", Err: ErrInvalidDirectory}
	}
	target := l.resolve(path)
	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Error{Op: "chdir", Name: path, Err: ErrInvalidDirectory}
		}
		return newError("chdir", path, err)
	}
	if !info.IsDir() {
		return &Error{Op: "chdir", Name: path, Err: ErrInvalidDirectory}
	}

	l.cwd = target
	if l.watcher != nil {
		if err := l.watcher.Rewatch(target); err != nil {
			logging.Get(logging.CategoryWorld).Warn("watcher: rewatch %s: %v", target, err)
		}
	}
	logging.World("current directory: %s", target)
	return nil
}
