package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Fawaz-asif/Email-spam-detector/internal/adapter/client"
	"github.com/Fawaz-asif/Email-spam-detector/internal/adapter/model"
)

type inspectReport struct {
	Model         string                 `json:"model" yaml:"model"`
	Version       string                 `json:"version" yaml:"version"`
	Features      int                    `json:"features,omitempty" yaml:"features,omitempty"`
	Probabilities *bool                  `json:"probabilities,omitempty" yaml:"probabilities,omitempty"`
	Status        string                 `json:"status,omitempty" yaml:"status,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

func newInspectCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Describe the loaded model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}

			var (
				report *inspectReport
				err    error
			)
			if a.remote != "" {
				report, err = a.inspectRemote(cmd)
			} else {
				report, err = a.inspectLocal()
			}
			if err != nil {
				return err
			}

			return writeReport(cmd.OutOrStdout(), format, report)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}

func (a *app) inspectLocal() (*inspectReport, error) {
	artifacts, err := model.LoadArtifacts(&a.cfg.Model)
	if err != nil {
		return nil, err
	}

	probabilities := artifacts.SupportsProbabilities()
	report := &inspectReport{
		Model:         artifacts.Classifier.Name(),
		Version:       artifacts.Version,
		Features:      artifacts.Vectorizer.Dimension(),
		Probabilities: &probabilities,
	}

	raw, err := model.ReadMetadata(model.MetadataPath(&a.cfg.Model))
	if err != nil {
		a.log.Warn("Model metadata unavailable", zap.Error(err))
		return report, nil
	}
	report.Metadata = decodeMetadata(a, raw)
	return report, nil
}

func (a *app) inspectRemote(cmd *cobra.Command) (*inspectReport, error) {
	c := client.NewSpamClient(a.remote, a.timeout)

	health, err := c.Health(cmd.Context())
	if err != nil {
		return nil, err
	}
	report := &inspectReport{
		Model:   health.Model,
		Version: health.Version,
		Status:  health.Status,
	}

	raw, err := c.ModelInfo(cmd.Context())
	if err != nil {
		a.log.Warn("Model metadata unavailable", zap.Error(err))
		return report, nil
	}
	report.Metadata = decodeMetadata(a, raw)
	return report, nil
}

func decodeMetadata(a *app, raw json.RawMessage) map[string]interface{} {
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		a.log.Warn("Model metadata is not an object", zap.Error(err))
		return nil
	}
	return doc
}

func writeReport(w io.Writer, format string, report *inspectReport) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
