package heuristic

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Vectors is a table of word vectors, all of the same dimension.
type Vectors struct {
	dim   int
	words map[string][]float64
}

// NewVectors builds a table from words. Every vector must have length dim.
func NewVectors(dim int, words map[string][]float64) (*Vectors, error) {
	if dim <= 0 {
		return nil, errors.New("vector dimension must be positive")
	}
	table := make(map[string][]float64, len(words))
	for word, vector := range words {
		if len(vector) != dim {
			return nil, fmt.Errorf("vector of '%s' has dimension %d, expected %d", word, len(vector), dim)
		}
		table[word] = append([]float64(nil), vector...)
	}
	return &Vectors{dim: dim, words: table}, nil
}

// LoadVectors reads vectors in the word2vec text format: an optional
// "<count> <dimension>" header, then one "<word> <v1> ... <vn>" line per
// word.
func LoadVectors(path string) (*Vectors, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vectors file: %w", err)
	}
	defer file.Close()

	words := make(map[string][]float64)
	dim := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if lineNumber == 1 && len(fields) == 2 {
			if _, err := strconv.Atoi(fields[0]); err == nil {
				if dim, err = strconv.Atoi(fields[1]); err != nil {
					return nil, fmt.Errorf("%s:%d: invalid dimension: %w", path, lineNumber, err)
				}
				continue
			}
		}

		vector := make([]float64, len(fields)-1)
		for i, field := range fields[1:] {
			if vector[i], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineNumber, err)
			}
		}
		if dim == 0 {
			dim = len(vector)
		}
		if len(vector) != dim {
			return nil, fmt.Errorf("%s:%d: dimension %d, expected %d", path, lineNumber, len(vector), dim)
		}
		words[fields[0]] = vector
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vectors file: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%s: no vectors", path)
	}
	return &Vectors{dim: dim, words: words}, nil
}

// Dim returns the dimension of every vector.
func (v *Vectors) Dim() int { return v.dim }

// Len returns the number of words.
func (v *Vectors) Len() int { return len(v.words) }

// Lookup returns the vector of word. The slice must not be modified.
func (v *Vectors) Lookup(word string) ([]float64, bool) {
	vector, ok := v.words[word]
	return vector, ok
}
