package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/service"
)

// Vectorizer types
const (
	VectorizerTfidf = "tfidf"
	VectorizerCount = "count"
)

// vectorizerDocument is the exported form of a fitted vectorizer
type vectorizerDocument struct {
	Type           string          `json:"type"`
	Vocabulary     map[string]int  `json:"vocabulary"`
	IDF            []float64       `json:"idf,omitempty"`
	NgramRange     [2]int          `json:"ngram_range"`
	StopWords      []string        `json:"stop_words,omitempty"`
	Binary         bool            `json:"binary"`
	SublinearTF    bool            `json:"sublinear_tf"`
	Norm           json.RawMessage `json:"norm"`
	MinTokenLength int             `json:"min_token_length,omitempty"`
}

// TfidfVectorizer maps normalized text to (tf-idf weighted) n-gram counts
// over a fixed vocabulary. Terms outside the vocabulary are ignored.
type TfidfVectorizer struct {
	vocabulary     map[string]int
	idf            []float64
	minN, maxN     int
	stopWords      map[string]struct{}
	binary         bool
	sublinearTF    bool
	norm           string
	minTokenLength int
	dim            int
}

var _ service.Vectorizer = (*TfidfVectorizer)(nil)

func newVectorizer(doc *vectorizerDocument) (*TfidfVectorizer, error) {
	switch doc.Type {
	case VectorizerTfidf, VectorizerCount:
	case "":
		return nil, errors.New("missing vectorizer type")
	default:
		return nil, fmt.Errorf("unsupported vectorizer type %q", doc.Type)
	}

	dim := len(doc.Vocabulary)
	if dim == 0 {
		return nil, errors.New("empty vocabulary")
	}
	seen := make([]bool, dim)
	for term, idx := range doc.Vocabulary {
		if idx < 0 || idx >= dim {
			return nil, fmt.Errorf("term %q has index %d outside [0,%d)", term, idx, dim)
		}
		if seen[idx] {
			return nil, fmt.Errorf("index %d assigned to more than one term", idx)
		}
		seen[idx] = true
	}

	if doc.Type == VectorizerTfidf && doc.IDF != nil && len(doc.IDF) != dim {
		return nil, fmt.Errorf("idf has %d weights, vocabulary has %d terms", len(doc.IDF), dim)
	}
	if doc.Type == VectorizerCount && doc.IDF != nil {
		return nil, errors.New("count vectorizer cannot carry idf weights")
	}

	minN, maxN := doc.NgramRange[0], doc.NgramRange[1]
	if minN == 0 && maxN == 0 {
		minN, maxN = 1, 1
	}
	if minN < 1 || maxN < minN {
		return nil, fmt.Errorf("invalid ngram_range [%d, %d]", minN, maxN)
	}

	norm, err := parseNorm(doc.Norm, doc.Type)
	if err != nil {
		return nil, err
	}

	minTokenLength := doc.MinTokenLength
	if minTokenLength <= 0 {
		minTokenLength = 2
	}

	stopWords := make(map[string]struct{}, len(doc.StopWords))
	for _, w := range doc.StopWords {
		stopWords[w] = struct{}{}
	}

	return &TfidfVectorizer{
		vocabulary:     doc.Vocabulary,
		idf:            doc.IDF,
		minN:           minN,
		maxN:           maxN,
		stopWords:      stopWords,
		binary:         doc.Binary,
		sublinearTF:    doc.SublinearTF,
		norm:           norm,
		minTokenLength: minTokenLength,
		dim:            dim,
	}, nil
}

// parseNorm resolves the norm setting. An absent key takes the type's
// default (l2 for tfidf, none for count); an explicit null means none.
func parseNorm(raw json.RawMessage, vectorizerType string) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		if vectorizerType == VectorizerTfidf {
			return "l2", nil
		}
		return "", nil
	}
	if bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	var norm string
	if err := json.Unmarshal(raw, &norm); err != nil {
		return "", fmt.Errorf("norm must be a string or null: %w", err)
	}
	if norm != "" && norm != "l1" && norm != "l2" {
		return "", fmt.Errorf("unsupported norm %q", norm)
	}
	return norm, nil
}

// Dimension returns the vocabulary size
func (v *TfidfVectorizer) Dimension() int {
	return v.dim
}

// Transform vectorizes a single normalized text
func (v *TfidfVectorizer) Transform(normalized string) (service.FeatureVector, error) {
	counts := make(map[int]float64)
	tokens := v.tokens(normalized)

	for n := v.minN; n <= v.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			gram := tokens[i]
			if n > 1 {
				gram = strings.Join(tokens[i:i+n], " ")
			}
			if idx, ok := v.vocabulary[gram]; ok {
				counts[idx]++
			}
		}
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	for i, idx := range indices {
		tf := counts[idx]
		switch {
		case v.binary:
			tf = 1
		case v.sublinearTF:
			tf = 1 + math.Log(tf)
		}
		if v.idf != nil {
			tf *= v.idf[idx]
		}
		values[i] = tf
	}

	normalize(values, v.norm)

	return service.FeatureVector{
		Dim:     v.dim,
		Indices: indices,
		Values:  values,
	}, nil
}

func (v *TfidfVectorizer) tokens(normalized string) []string {
	fields := strings.Fields(normalized)
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) < v.minTokenLength {
			continue
		}
		if _, stop := v.stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func normalize(values []float64, norm string) {
	var total float64
	switch norm {
	case "l1":
		for _, x := range values {
			total += math.Abs(x)
		}
	case "l2":
		for _, x := range values {
			total += x * x
		}
		total = math.Sqrt(total)
	default:
		return
	}
	if total == 0 {
		return
	}
	for i := range values {
		values[i] /= total
	}
}
