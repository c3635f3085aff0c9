package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/user/codewatch/internal/format"
	"github.com/user/codewatch/internal/session"
	"github.com/user/codewatch/internal/stream"
)

var viewFormat string

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().StringVar(&viewFormat, "format", "", "output format: table, plain, or json (default: table on a terminal)")
}

var viewCmd = &cobra.Command{
	Use:   "view <stream-file>",
	Short: "Replay a captured event stream and print the conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func runView(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg)

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open stream file: %w", err)
	}
	defer f.Close()

	tracker := session.NewTracker("", "")

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 256*1024), 8*1024*1024)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		tracker.HandleEvent(stream.Classify(scanner.Bytes()))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan stream file: %w", err)
	}

	outFormat := viewFormat
	if outFormat == "" {
		if isatty.IsTerminal(os.Stdout.Fd()) {
			outFormat = "table"
		} else {
			outFormat = "plain"
		}
	}

	width := 0
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}

	final := tracker.Session()
	if err := format.WriteConversation(os.Stdout, final, outFormat, width); err != nil {
		return err
	}
	if outFormat != "json" && len(final.Todos) > 0 {
		fmt.Println()
		if err := format.WriteTodos(os.Stdout, final.Todos); err != nil {
			return err
		}
	}
	return nil
}
