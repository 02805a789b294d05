// Command wexpr converts W-Expression documents between minified text,
// human-readable text, and the binary file format, and validates them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	versionMajor = 1
	versionMinor = 0
	versionPatch = 0
)

var (
	inputPath  string
	outputPath string
	verbose    bool
	logger     *zap.Logger
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "wexpr",
		Short:         "Convert and validate W-Expression (wexpr) documents",
		Version:       fmt.Sprintf("%d.%d.%d", versionMajor, versionMinor, versionPatch),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
	}
	root.SetVersionTemplate("WexprTool {{.Version}}\n")

	root.PersistentFlags().StringVarP(&inputPath, "input", "i", "-", `input path, or "-" for stdin`)
	root.PersistentFlags().StringVarP(&outputPath, "output", "o", "-", `output path, or "-" for stdout`)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostic information to stderr")

	root.AddCommand(
		newValidateCommand(),
		newHumanReadableCommand(),
		newMiniCommand(),
		newBinaryCommand(),
	)
	return root
}

func setupLogger() error {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = ""
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = l
	return nil
}
