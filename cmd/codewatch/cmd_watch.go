package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/user/codewatch/internal/format"
	"github.com/user/codewatch/internal/notify"
	"github.com/user/codewatch/internal/session"
	"github.com/user/codewatch/internal/types"
)

var (
	watchIntent  string
	watchProject string
	watchFile    string
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchIntent, "intent", "", "the task text submitted to the agent")
	watchCmd.Flags().StringVar(&watchProject, "project", "", "project path the agent works in")
	watchCmd.Flags().StringVarP(&watchFile, "file", "f", "", "read the event stream from a file instead of stdin")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Ingest a live agent event stream and track the session",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg)

	input := os.Stdin
	if watchFile != "" {
		f, err := os.Open(watchFile)
		if err != nil {
			return fmt.Errorf("open stream file: %w", err)
		}
		defer f.Close()
		input = f
	}

	registry := notify.NewRegistry()
	channel := ""
	if cfg.Telegram.Token != "" {
		tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			slog.Warn("telegram notifier disabled", "error", err)
		} else {
			registry.Register("telegram:", tg.Handler())
			channel = fmt.Sprintf("telegram:%d", cfg.Telegram.ChatID)
		}
	}

	var opts []session.Option
	if estimator, err := session.NewTokenEstimator(cfg.Agent.Model); err != nil {
		slog.Warn("token estimation disabled", "error", err)
	} else {
		opts = append(opts, session.WithTokenEstimator(estimator))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := session.NewManager(int64(cfg.MaxConcurrent))
	manager.Start(ctx)
	defer manager.Stop()

	tracker := manager.Open(watchIntent, watchProject, opts...)

	var printMu sync.Mutex
	printed := 0
	tracker.OnChange(func(s types.Session) {
		printMu.Lock()
		defer printMu.Unlock()
		for _, m := range s.Messages[printed:] {
			printMessage(m)
		}
		printed = len(s.Messages)
	})

	done := make(chan types.Session, 1)
	tracker.OnTransition(func(s types.Session) {
		select {
		case done <- s:
		default:
		}
	})

	// Ctrl-C is a user-initiated cancellation, not a failure.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		manager.Interrupt(tracker.ID())
	}()

	if err := ingestLines(manager, tracker.ID(), input); err != nil {
		slog.Warn("stream read ended", "error", err)
	}
	if !tracker.Session().Status.Terminal() {
		manager.Fail(tracker.ID(), errors.New("event stream ended before completion"))
	}

	final := <-done

	if todos := final.Todos; len(todos) > 0 {
		fmt.Println()
		format.WriteTodos(os.Stdout, todos)
	}
	fmt.Printf("\nsession %s: %s (%d messages)\n", final.ID, final.Status, len(final.Messages))

	if channel != "" {
		if err := registry.Deliver(channel, final, notify.RenderTerminal(final)); err != nil {
			slog.Warn("notification delivery failed", "error", err)
		}
	}
	return nil
}

func ingestLines(manager *session.Manager, id types.SessionID, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	// Allow large tool outputs on a single line
	scanner.Buffer(make([]byte, 0, 256*1024), 8*1024*1024)

	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		if err := manager.Ingest(id, scanner.Bytes()); err != nil {
			slog.Warn("dropping stream line", "error", err)
		}
	}
	return scanner.Err()
}

func printMessage(m types.Message) {
	switch m.Type {
	case types.MessageTool:
		fmt.Printf("%s[%s] %s\n", m.ToolName, m.Status, m.Content)
	case types.MessageSystem:
		fmt.Printf("-- %s --\n", m.Content)
	default:
		fmt.Println(m.Content)
	}
}
