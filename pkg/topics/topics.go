// Package topics serves dotlink's long-form help topics: embedded markdown
// documents rendered for the terminal with glamour.
package topics

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed docs/*.md
var docsFS embed.FS

// List returns the available topic names, sorted.
func List() ([]string, error) {
	entries, err := fs.ReadDir(docsFS, "docs")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".md") {
			names = append(names, strings.TrimSuffix(entry.Name(), ".md"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Render returns the named topic rendered for the terminal.
func Render(name string) (string, error) {
	content, err := fs.ReadFile(docsFS, "docs/"+name+".md")
	if err != nil {
		return "", fmt.Errorf("unknown topic %q", name)
	}
	return NewGlamourRenderer().Render(string(content), ".md"), nil
}
