package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCmd creates the agri-cli root command.
func NewRootCmd(ver string) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "agri-cli",
		Short:         "Crop yield, cost and profit estimates for Indian farms",
		Version:       ver,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log provider activity to stderr")

	cmd.AddCommand(NewEstimateCmd(func() *zap.Logger {
		if !verbose {
			return zap.NewNop()
		}
		logger, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewNop()
		}
		return logger
	}))

	return cmd
}
