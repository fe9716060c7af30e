package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/provide-io/pixelxor/go/pixelxor/internal/runner"
	"github.com/provide-io/pixelxor/go/pixelxor/pkg/logging"
)

const version = "0.1.0"

var (
	logLevel    string
	versionFlag bool
	rootCmd     *cobra.Command
)

func getBuildTimestamp() string {
	// Try to get vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "pixelxor %s\n", version)
	fmt.Fprintf(w, "Built: %s\n", getBuildTimestamp())
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pixelxor",
		Short: "XOR every pixel of an image with a one-byte key",
		Long: `Interactively asks for an image, a label (encrypt or decrypt) and an
integer key, then writes <name>_<encrypted|decrypted>.png next to the input.
Running it again on the output with the same key restores the pixels.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			if versionFlag {
				printVersion(cmd.OutOrStdout())
				return
			}
			runSession(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)

	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	cmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")
	return cmd
}

// runSession runs one operation. Failures are already reported on the
// console, so the process exits normally either way.
func runSession(in io.Reader, out io.Writer) {
	level, source := logging.ResolveLevel(logLevel)
	logger := logging.NewLogger("pixelxor", level, os.Stderr)
	logger.Debug("Log level", "level", level, "source", source)

	r := &runner.Runner{
		In:     in,
		Out:    out,
		Logger: logger,
		Color:  out == os.Stdout && !color.NoColor,
	}
	if err := r.Run(); err != nil {
		logger.Debug("Session ended with error", "error", err)
	}
}

func init() {
	rootCmd = newRootCmd(os.Stdin, os.Stdout)
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "An error occurred: %v\n", r)
			debug.PrintStack()
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
