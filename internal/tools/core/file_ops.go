package core

import (
	"context"
	"fmt"

	"fsbot/internal/files"
	"fsbot/internal/tools"
)

// CreateFileTool returns a tool for creating an empty file.
func CreateFileTool(fsys files.FileSystem) *tools.Tool {
	return &tools.Tool{
		Name:        ToolCreateFile,
		Description: "Create an empty file in the current directory",
		Category:    tools.CategoryMutation,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			name, err := stringArg(args, "name")
			if err != nil {
				return "", err
			}
			if err := fsys.CreateFile(ctx, name); err != nil {
				return "", err
			}
			return name, nil
		},
		Schema: tools.ToolSchema{
			Required: []string{"name"},
			Properties: map[string]tools.Property{
				"name": {
					Type:        "string",
					Description: "The file name, relative to the current directory",
				},
			},
		},
	}
}

// DeleteFileTool returns a tool for deleting a file.
func DeleteFileTool(fsys files.FileSystem) *tools.Tool {
	return &tools.Tool{
		Name:        ToolDeleteFile,
		Description: "Delete a file from the current directory",
		Category:    tools.CategoryMutation,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			name, err := stringArg(args, "name")
			if err != nil {
				return "", err
			}
			if err := fsys.DeleteFile(ctx, name); err != nil {
				return "", err
			}
			return name, nil
		},
		Schema: tools.ToolSchema{
			Required: []string{"name"},
			Properties: map[string]tools.Property{
				"name": {
					Type:        "string",
					Description: "The file name, relative to the current directory",
				},
			},
		},
	}
}

// ReadFileTool returns a tool for reading file contents.
func ReadFileTool(fsys files.FileSystem) *tools.Tool {
	return &tools.Tool{
		Name:        ToolReadFile,
		Description: "Read the contents of a file",
		Category:    tools.CategoryQuery,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			path, err := stringArg(args, "path")
			if err != nil {
				return "", err
			}
			return fsys.ReadFile(ctx, path)
		},
		Schema: tools.ToolSchema{
			Required: []string{"path"},
			Properties: map[string]tools.Property{
				"path": {
					Type:        "string",
					Description: "The file path to read",
				},
			},
		},
	}
}

func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", tools.ErrInvalidArgType, key)
	}
	return v, nil
}
