package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"fsbot/internal/logging"
)

// Registry maps tool names to the filesystem operations of one session. The
// engine resolves an intent to a name and runs it through Execute.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*Tool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// Register adds tool. Names are unique within a registry.
func (r *Registry) Register(tool *Tool) error {
	if err := tool.Validate(); err != nil {
		return fmt.Errorf("invalid tool: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("%w: %s", ErrToolAlreadyRegistered, tool.Name)
	}
	r.tools[tool.Name] = tool

	logging.ToolsDebug("registered %s (%s)", tool.Name, tool.Category)
	return nil
}

// Get returns the named tool, or nil.
func (r *Registry) Get(name string) *Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// Names lists the registered tools in name order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs the named tool. A tool that fails still yields a result
// carrying the error and duration; an unknown name yields none.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (*ToolResult, error) {
	tool := r.Get(name)
	if tool == nil {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	start := time.Now()
	result, err := "", checkRequired(tool, args)
	if err == nil {
		result, err = tool.Execute(ctx, args)
	}
	elapsed := time.Since(start)
	logging.ToolsDebug("%s %s finished in %v (ok=%v)", tool.Category, tool.Name, elapsed, err == nil)

	return &ToolResult{
		ToolName:   tool.Name,
		Result:     result,
		Error:      err,
		DurationMs: elapsed.Milliseconds(),
	}, err
}

func checkRequired(tool *Tool, args map[string]any) error {
	for _, name := range tool.Schema.Required {
		if _, ok := args[name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingRequiredArg, name)
		}
	}
	return nil
}
