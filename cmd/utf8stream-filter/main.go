// Command utf8stream-filter copies its input to stdout, validating along the
// way that every byte of it is well-formed UTF-8.  It exits non-zero at the
// first malformed, overlong, or truncated sequence, reporting where in the
// decoded text the failure occurred.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	utf8stream "github.com/chronos-tachyon/go-utf8stream"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "utf8stream-filter: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var blockSize int

	cmd := &cobra.Command{
		Use:   "utf8stream-filter [file ...]",
		Short: "Copy input to stdout, rejecting anything that is not valid UTF-8",
		Long: `utf8stream-filter reads the named files (or standard input) and copies
them to standard output, validating incrementally that the stream is
well-formed UTF-8.  On the first validation failure it stops, reports the
location of the failure, and exits non-zero.  Multi-byte characters split
across read boundaries are handled transparently.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if blockSize < 0 {
				return fmt.Errorf("--block-size must not be negative")
			}
			opts := utf8stream.Options{BlockSize: blockSize}
			if len(args) == 0 {
				return filter(cmd.OutOrStdout(), os.Stdin, "stdin", opts)
			}
			for _, name := range args {
				f, err := os.Open(name)
				if err != nil {
					return err
				}
				err = filter(cmd.OutOrStdout(), f, name, opts)
				f.Close()
				if err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&blockSize, "block-size", 0, "bytes to read per block (default 4096)")
	return cmd
}

// filter streams r through a validating Reader into w, stopping at the first
// failure.
func filter(w io.Writer, r io.Reader, name string, opts utf8stream.Options) error {
	sr := utf8stream.NewReader(r, opts)
	for {
		text, err := sr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: near %s: %w", name, sr.Position(), err)
		}
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
	}
}
