package core

import (
	"context"
	"strings"

	"fsbot/internal/files"
	"fsbot/internal/tools"
)

// SearchFilesTool returns a tool that lists every entry below the current
// directory whose name contains the query, ignoring case. The result holds
// one path per line and is empty when nothing matched.
func SearchFilesTool(fsys files.FileSystem) *tools.Tool {
	return &tools.Tool{
		Name:        ToolSearchFiles,
		Description: "Search for files by name below the current directory",
		Category:    tools.CategoryQuery,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			query, err := stringArg(args, "query")
			if err != nil {
				return "", err
			}
			paths, err := fsys.SearchFiles(ctx, query)
			if err != nil {
				return "", err
			}
			return strings.Join(paths, "\n"), nil
		},
		Schema: tools.ToolSchema{
			Required: []string{"query"},
			Properties: map[string]tools.Property{
				"query": {
					Type:        "string",
					Description: "Case-insensitive substring of the file name",
				},
			},
		},
	}
}
