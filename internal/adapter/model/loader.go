package model

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/service"
	"github.com/Fawaz-asif/Email-spam-detector/internal/infrastructure/config"
)

// Artifacts is the loaded, read-only model pair
type Artifacts struct {
	Vectorizer service.Vectorizer
	Classifier service.Classifier
	Version    string
}

// Predictor wires the artifacts into a predictor
func (a *Artifacts) Predictor() *service.Predictor {
	return service.NewPredictor(a.Vectorizer, a.Classifier)
}

// SupportsProbabilities reports whether the classifier estimates probabilities
func (a *Artifacts) SupportsProbabilities() bool {
	_, ok := a.Classifier.(service.ProbabilityEstimator)
	return ok
}

// LoadArtifacts reads the vectorizer and classifier named by cfg. Any
// error is an *ArtifactError and must abort startup.
func LoadArtifacts(cfg *config.ModelConfig) (*Artifacts, error) {
	vectorizerPath := resolve(cfg.Dir, cfg.VectorizerFile)
	var vdoc vectorizerDocument
	if err := readDocument(vectorizerPath, &vdoc); err != nil {
		return nil, &ArtifactError{Artifact: "vectorizer", Path: vectorizerPath, Err: err}
	}
	vectorizer, err := newVectorizer(&vdoc)
	if err != nil {
		return nil, &ArtifactError{Artifact: "vectorizer", Path: vectorizerPath, Err: err}
	}

	classifierPath := resolve(cfg.Dir, cfg.ClassifierFile)
	var cdoc classifierDocument
	if err := readDocument(classifierPath, &cdoc); err != nil {
		return nil, &ArtifactError{Artifact: "classifier", Path: classifierPath, Err: err}
	}
	classifier, err := newClassifier(&cdoc, vectorizer.Dimension())
	if err != nil {
		return nil, &ArtifactError{Artifact: "classifier", Path: classifierPath, Err: err}
	}

	return &Artifacts{
		Vectorizer: vectorizer,
		Classifier: classifier,
		Version:    cfg.Version,
	}, nil
}

// MetadataPath returns the resolved path of the model metadata file
func MetadataPath(cfg *config.ModelConfig) string {
	return resolve(cfg.Dir, cfg.MetadataFile)
}

// ReadMetadata returns the metadata file's JSON document unchanged
func ReadMetadata(path string) (json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return nil, fmt.Errorf("%s is not valid JSON", filepath.Base(path))
	}
	return json.RawMessage(data), nil
}

func resolve(dir, file string) string {
	if filepath.IsAbs(file) || dir == "" {
		return file
	}
	return filepath.Join(dir, file)
}

func readDocument(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode: %w", err)
	}
	if dec.More() {
		return errors.New("failed to decode: trailing data after document")
	}
	return nil
}
