package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// askCmd handles one utterance and prints the reply
var askCmd = &cobra.Command{
	Use:   "ask [utterance]",
	Short: "Handle a single utterance and print the reply",
	Example: `  fsbot ask create file notes.txt
  fsbot ask "find Python files"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	eng, closeFS, err := newEngine(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeFS()

	input := strings.Join(args, " ")
	turn := eng.Handle(cmd.Context(), input)
	logger.Debug("Handled utterance",
		zap.String("input", input),
		zap.String("intent", turn.Intent.String()))

	fmt.Fprintln(cmd.OutOrStdout(), turn.Reply)
	return nil
}
