package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Fawaz-asif/Email-spam-detector/internal/infrastructure/config"
	"github.com/Fawaz-asif/Email-spam-detector/internal/infrastructure/logger"
)

type app struct {
	configFile string
	verbose    bool
	remote     string
	timeout    time.Duration

	cfg *config.Config
	log *zap.Logger
}

// NewRootCmd builds the spamctl command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "spamctl",
		Short: "Classify emails with the spam detector model",
		Long: `spamctl runs the spam detector's prediction pipeline from the command line,
either on the local model artifacts or against a running service.

Example usage:
  spamctl predict "WIN a FREE iPhone now!!!"      # Classify one text
  cat mail.txt | spamctl predict                   # Classify stdin
  spamctl batch 'inbox/**/*.eml'                   # Classify many files
  spamctl inspect --format yaml                    # Describe the model
  spamctl --remote http://localhost:5000 predict hi`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.log = logger.NewCLILogger(a.verbose)

			cfg, err := config.LoadFile(a.configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default is ./config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")
	root.PersistentFlags().StringVar(&a.remote, "remote", "", "base URL of a running spam detector instead of local artifacts")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 10*time.Second, "request timeout for --remote")

	root.AddCommand(newPredictCmd(a), newBatchCmd(a), newInspectCmd(a))
	return root
}

// Execute runs spamctl and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
