package heuristic

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Yiling-J/theine-go"
	"gonum.org/v1/gonum/floats"
)

type embedding struct {
	vector []float64
	known  bool
}

// Embedder turns titles into vectors by averaging the vectors of their
// tokens. Embeddings are cached by title and shared by every run.
type Embedder struct {
	vectors *Vectors
	cache   *theine.Cache[string, embedding]
}

// NewEmbedder returns an embedder keeping up to cacheSize embeddings. Close
// must be called to stop the cache.
func NewEmbedder(vectors *Vectors, cacheSize int64) (*Embedder, error) {
	if cacheSize <= 0 {
		cacheSize = 100000
	}
	cache, err := theine.NewBuilder[string, embedding](cacheSize).Build()
	if err != nil {
		return nil, fmt.Errorf("build embeddings cache: %w", err)
	}
	return &Embedder{vectors: vectors, cache: cache}, nil
}

func (e *Embedder) Close() {
	e.cache.Close()
}

// Dim returns the dimension of the embeddings.
func (e *Embedder) Dim() int {
	return e.vectors.Dim()
}

// Embed returns the embedding of title. When no token of title has a vector
// the zero vector is returned and known is false. The returned slice must not
// be modified.
func (e *Embedder) Embed(title string) (vector []float64, known bool) {
	if cached, ok := e.cache.Get(title); ok {
		return cached.vector, cached.known
	}

	sum := make([]float64, e.vectors.Dim())
	found := 0
	for _, token := range Tokenize(title) {
		if wordVector, ok := e.vectors.Lookup(token); ok {
			floats.Add(sum, wordVector)
			found++
		}
	}
	if found > 0 {
		floats.Scale(1/float64(found), sum)
	}

	e.cache.Set(title, embedding{vector: sum, known: found > 0}, 1)
	return sum, found > 0
}

// Tokenize lower-cases title and splits it on everything that is not a
// letter or a digit.
func Tokenize(title string) []string {
	return strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
