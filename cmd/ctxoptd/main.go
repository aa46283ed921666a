// ctxoptd is a demo CLI that drives a real shell session through the
// ctxopt core: it spawns a command behind a PTY, puts the controlling
// terminal into raw mode, and pipes bytes between the session and the
// real stdin/stdout, printing any suggestions the injector surfaces.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	ctxopt "github.com/ctxopt/ctxopt-core"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	defer func() {
		if r := recover(); r != nil {
			restoreTerminal()
			fmt.Fprintf(os.Stderr, "\n\nPANIC: %v\n", r)
			os.Exit(1)
		}
	}()

	logFile, err := os.Create("/tmp/ctxoptd.log")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logLevel := slog.LevelInfo
	if os.Getenv("CTXOPT_LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:     "ctxoptd",
		Short:   "Run a command behind a context-optimizing PTY session",
		Version: version,
		RunE:    runAttach,
	}
	rootCmd.Flags().String("command", "bash", "command to run inside the PTY")
	rootCmd.Flags().Uint64("interval-ms", 5000, "minimum milliseconds between suggestions")
	rootCmd.Flags().Bool("no-suggestions", false, "disable suggestion generation")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAttach(cmd *cobra.Command, args []string) error {
	logger := slog.Default()

	command, _ := cmd.Flags().GetString("command")
	intervalMS, _ := cmd.Flags().GetUint64("interval-ms")
	noSuggestions, _ := cmd.Flags().GetBool("no-suggestions")

	sess, err := ctxopt.NewWithConfig(24, 80, command, intervalMS, !noSuggestions)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer sess.Kill()

	if !ctxopt.EnterRawMode() {
		logger.Warn("could not enter raw mode; continuing with canonical stdin")
	}
	defer restoreTerminal()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	go pumpStdin(sess)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if !sess.IsRunning() {
			return nil
		}

		res, err := sess.Read(ctx)
		if err != nil {
			logger.Error("read failed", "error", err)
			return err
		}

		if res.Output != "" {
			fmt.Print(res.CleanOutput)
		}
		for _, s := range res.Suggestions {
			fmt.Print(s)
		}

		time.Sleep(10 * time.Millisecond)
	}
}

// pumpStdin copies raw keystrokes from the real terminal into the
// session until stdin is closed or the program exits.
func pumpStdin(sess *ctxopt.Session) {
	buf := make([]byte, 4096)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			if werr := sess.WriteBytes(buf[:n]); werr != nil {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func restoreTerminal() {
	ctxopt.ExitRawMode()
	fmt.Print("\033[?1049l")
	fmt.Print("\033[?25h")
	fmt.Print("\033[0m")
}
