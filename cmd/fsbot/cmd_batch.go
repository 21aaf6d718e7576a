package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	batchEcho bool
	batchRaw  bool
)

// batchCmd replays utterances from a file or stdin through one session
var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Handle utterances line by line from a file or stdin",
	Long: `Reads one utterance per line and prints each reply. All lines share one
session, so later lines see the effects of earlier ones.

Blank lines and lines starting with # are skipped by default, unlike ask and
the HTTP API where an empty utterance is a turn of its own. Pass --raw to send
every line, untrimmed, as an utterance.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().BoolVar(&batchEcho, "echo", false, "Print each utterance before its reply")
	batchCmd.Flags().BoolVar(&batchRaw, "raw", false, "Send every line as an utterance, blank and # lines included")
}

func runBatch(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open batch file: %w", err)
		}
		defer f.Close()
		in = f
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	eng, closeFS, err := newEngine(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeFS()

	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := cmd.Context().Err(); err != nil {
			break
		}
		line := scanner.Text()
		if !batchRaw {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
		}
		if batchEcho {
			fmt.Fprintf(out, "> %s\n", line)
		}
		turn := eng.Handle(cmd.Context(), line)
		fmt.Fprintln(out, turn.Reply)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read batch: %w", err)
	}

	logger.Info("Batch complete", zap.Int("turns", eng.State().Turns()))
	return nil
}
