package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newPredictCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "predict [text]",
		Short: "Classify a single text",
		Long: `Classify a single text and print the prediction as JSON.
Without an argument the text is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) > 0 {
				text = args[0]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				text = string(data)
			}

			p, err := a.newPredictor()
			if err != nil {
				return err
			}

			result, err := p.Predict(cmd.Context(), text)
			if err != nil {
				return fmt.Errorf("prediction failed: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}
