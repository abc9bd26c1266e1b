// Package memory provides a GraphSource over an adjacency map held in memory,
// for tests and small fixture graphs.
package memory

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/wikisearch"
)

// Source is a read-only page graph. Link targets without a page of their own
// are still known nodes, with no outgoing links.
type Source struct {
	links map[string][]string
}

var _ wikisearch.GraphSource[string] = (*Source)(nil)

// New copies pages, a map from title to the titles it links to, in link order.
func New(pages map[string][]string) *Source {
	links := make(map[string][]string, len(pages))
	for title, targets := range pages {
		links[title] = append([]string(nil), targets...)
		for _, target := range targets {
			if _, ok := links[target]; !ok {
				if _, isPage := pages[target]; !isPage {
					links[target] = nil
				}
			}
		}
	}
	return &Source{links: links}
}

type document struct {
	Pages map[string][]string `yaml:"pages"`
}

// Load reads a YAML document of the form
//
//	pages:
//	  Go: [Google, Concurrency]
//	  Google: [Go]
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph file: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse graph file %s: %w", path, err)
	}
	return New(doc.Pages), nil
}

func (s *Source) Resolve(_ context.Context, key string) (string, error) {
	if _, ok := s.links[key]; !ok {
		return "", fmt.Errorf("page '%s': %w", key, wikisearch.ErrNodeNotFound)
	}
	return key, nil
}

func (s *Source) Neighbors(ctx context.Context, node string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	links, ok := s.links[node]
	if !ok {
		return nil, fmt.Errorf("page '%s': %w", node, wikisearch.ErrNodeNotFound)
	}
	return links, nil
}

// Len returns the number of known nodes.
func (s *Source) Len() int {
	return len(s.links)
}
