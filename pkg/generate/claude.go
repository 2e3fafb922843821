package generate

import (
	"path/filepath"
	"strings"

	"github.com/macropower/rulekit/pkg/target"
)

// claudeGenerator emits plain markdown under .claude/rules/.
type claudeGenerator struct{}

func (claudeGenerator) Target() target.Target {
	return target.Claude
}

func (claudeGenerator) Path(name string) string {
	return filepath.Join(".claude", "rules", name+".md")
}

func (claudeGenerator) Render(r Rule) ([]byte, error) {
	body := strings.TrimRight(r.Body, "\n") + "\n"

	return []byte(body), nil
}
