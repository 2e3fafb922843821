package generate

import (
	"path/filepath"
	"strings"

	"github.com/macropower/rulekit/pkg/target"
)

// factoryGenerator emits plain markdown under .factory/rules/.
type factoryGenerator struct{}

func (factoryGenerator) Target() target.Target {
	return target.Factory
}

func (factoryGenerator) Path(name string) string {
	return filepath.Join(".factory", "rules", name+".md")
}

func (factoryGenerator) Render(r Rule) ([]byte, error) {
	body := strings.TrimRight(r.Body, "\n") + "\n"

	return []byte(body), nil
}
