package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/bisegni/grapharscan/pkg/graphar"
)

var replCompleter = readline.NewPrefixCompleter(
	readline.PcItem("CALL "+graphar.FunctionName+"("),
	readline.PcItem("EXPLAIN CALL "+graphar.FunctionName+"("),
	readline.PcItem("exit"),
	readline.PcItem("quit"),
)

// RunInteractive reads statements from a readline prompt until exit, quit,
// EOF or ctx is done. Errors are printed and the loop continues.
func RunInteractive(ctx context.Context, a *app) error {
	fmt.Println("Interactive mode enabled. Type 'exit' or 'quit' to leave.")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "grapharscan> ",
		HistoryFile:     "", // In-memory history for this session
		AutoComplete:    replCompleter,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for ctx.Err() == nil {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				break
			}
			continue
		} else if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.EqualFold(trimmed, "exit") || strings.EqualFold(trimmed, "quit") {
			break
		}

		if err := runStatement(ctx, a, trimmed, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	return nil
}
