package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoTool(name string, category ToolCategory, required ...string) *Tool {
	return &Tool{
		Name:        name,
		Description: "echoes its name",
		Category:    category,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			return name, nil
		},
		Schema: ToolSchema{Required: required},
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if n := len(reg.Names()); n != 0 {
		t.Errorf("new registry should be empty, got %d tools", n)
	}
}

func TestRegisterAndGet(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register(echoTool("read_file", CategoryQuery)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	got := reg.Get("read_file")
	if got == nil {
		t.Fatal("Get returned nil for registered tool")
	}
	if got.Name != "read_file" {
		t.Errorf("got name %q, want %q", got.Name, "read_file")
	}
	if reg.Get("missing") != nil {
		t.Error("Get should return nil for unknown tools")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	reg := NewRegistry()
	tool := echoTool("dupe", CategoryQuery)

	require.NoError(t, reg.Register(tool))
	err := reg.Register(tool)
	assert.ErrorIs(t, err, ErrToolAlreadyRegistered)
}

func TestRegisterValidation(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name    string
		tool    *Tool
		wantErr error
	}{
		{
			name:    "empty name",
			tool:    &Tool{Name: "", Execute: func(ctx context.Context, args map[string]any) (string, error) { return "", nil }},
			wantErr: ErrToolNameEmpty,
		},
		{
			name:    "nil execute",
			tool:    &Tool{Name: "no_exec"},
			wantErr: ErrToolExecuteNil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Register(tt.tool)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNamesAreSorted(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"search_files", "delete_file", "read_file", "create_file"} {
		require.NoError(t, reg.Register(echoTool(name, CategoryQuery)))
	}
	assert.Equal(t, []string{"create_file", "delete_file", "read_file", "search_files"}, reg.Names())
}

func TestExecute(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(echoTool("read_file", CategoryQuery, "path")))
	ctx := context.Background()

	result, err := reg.Execute(ctx, "read_file", map[string]any{"path": "a.txt"})
	require.NoError(t, err)
	assert.True(t, result.IsSuccess())
	assert.Equal(t, "read_file", result.Result)
	assert.Equal(t, "read_file", result.ToolName)

	result, err = reg.Execute(ctx, "read_file", map[string]any{})
	assert.ErrorIs(t, err, ErrMissingRequiredArg)
	require.NotNil(t, result)
	assert.False(t, result.IsSuccess())

	result, err = reg.Execute(ctx, "nope", nil)
	assert.ErrorIs(t, err, ErrToolNotFound)
	assert.Nil(t, result)
}

func TestExecutePropagatesToolError(t *testing.T) {
	reg := NewRegistry()
	boom := errors.New("boom")
	require.NoError(t, reg.Register(&Tool{
		Name:     "failing",
		Category: CategoryMutation,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			return "", boom
		},
	}))

	result, err := reg.Execute(context.Background(), "failing", nil)
	assert.ErrorIs(t, err, boom)
	require.NotNil(t, result)
	assert.ErrorIs(t, result.Error, boom)
}
