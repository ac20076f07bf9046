package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/entity"
)

type batchResult struct {
	File   string                   `json:"file"`
	Result *entity.PredictionResult `json:"result,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

type batchSummary struct {
	Total      int `json:"total"`
	Spam       int `json:"spam"`
	Legitimate int `json:"legitimate"`
	Failed     int `json:"failed"`
}

type batchReport struct {
	Results []batchResult `json:"results"`
	Summary batchSummary  `json:"summary"`
}

func newBatchCmd(a *app) *cobra.Command {
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "batch <pattern>...",
		Short: "Classify every file matching the patterns",
		Long: `Classify the contents of every file matching the glob patterns.
Patterns support ** for recursive matching. Quote them so the shell
does not expand them first.

Examples:
  spamctl batch 'inbox/*.txt'
  spamctl batch 'mail/**/*.eml' 'spool/*'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandPatterns(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errors.New("no files match the given patterns")
			}

			p, err := a.newPredictor()
			if err != nil {
				return err
			}

			var bar *progressbar.ProgressBar
			if !noProgress {
				bar = newProgressBar(cmd.ErrOrStderr(), len(files))
			}

			report := batchReport{Results: make([]batchResult, 0, len(files))}
			for _, file := range files {
				entry := batchResult{File: file}

				data, err := os.ReadFile(file)
				if err == nil {
					entry.Result, err = p.Predict(cmd.Context(), string(data))
				}

				switch {
				case err != nil:
					a.log.Warn("Failed to classify file", zap.String("file", file), zap.Error(err))
					entry.Error = err.Error()
					report.Summary.Failed++
				case entry.Result.IsSpam:
					report.Summary.Spam++
				default:
					report.Summary.Legitimate++
				}
				report.Summary.Total++
				report.Results = append(report.Results, entry)

				if bar != nil {
					_ = bar.Add(1)
				}
			}
			if bar != nil {
				_ = bar.Finish()
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "do not draw a progress bar")
	return cmd
}

// expandPatterns returns the regular files matching any pattern, sorted and
// without duplicates
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			info, err := os.Stat(m)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Classifying[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}
