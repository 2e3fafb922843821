package generate

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/macropower/rulekit/pkg/target"
)

// cursorGenerator emits MDC files under .cursor/rules/: markdown with a YAML
// frontmatter block that Cursor uses for rule selection.
type cursorGenerator struct{}

// mdcFrontmatter is the metadata prologue of a Cursor MDC rule file.
type mdcFrontmatter struct {
	Description string `yaml:"description"`
	AlwaysApply bool   `yaml:"alwaysApply"`
}

func (cursorGenerator) Target() target.Target {
	return target.Cursor
}

func (cursorGenerator) Path(name string) string {
	return filepath.Join(".cursor", "rules", name+".mdc")
}

func (cursorGenerator) Render(r Rule) ([]byte, error) {
	meta, err := yaml.Marshal(mdcFrontmatter{
		Description: r.Description,
		AlwaysApply: r.Description == "",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal MDC frontmatter: %w", err)
	}

	var buf bytes.Buffer

	buf.WriteString("---\n")
	buf.Write(meta)
	buf.WriteString("---\n\n")
	buf.WriteString(strings.TrimRight(r.Body, "\n") + "\n")

	return buf.Bytes(), nil
}
