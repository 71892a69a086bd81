package factfile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reelify/reelcut/internal/types"
)

// Adapter loads the overlay fact pool from a YAML file. Accepts either a
// bare list of facts or a document with a top-level "facts" key.
type Adapter struct{}

func New() *Adapter { return &Adapter{} }

type document struct {
	Facts []types.Fact `yaml:"facts"`
}

func (a *Adapter) Load(ctx context.Context, path string) ([]types.Fact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var facts []types.Fact
	if err := yaml.Unmarshal(b, &facts); err != nil {
		var doc document
		if derr := yaml.Unmarshal(b, &doc); derr != nil {
			return nil, fmt.Errorf("parse facts %s: %w", path, err)
		}
		facts = doc.Facts
	}

	out := facts[:0]
	for _, f := range facts {
		f.Text = strings.TrimSpace(f.Text)
		if f.Text == "" {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}
