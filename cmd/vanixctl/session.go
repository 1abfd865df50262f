package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/config"
	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/localstore"
	"github.com/vanixstudio/vanix-bff/internal/session"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSessionCmd(cfg *config.Config, newLogger func() *zap.Logger) *cobra.Command {
	var (
		file      string
		watch     bool
		clearKeys bool
		interval  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Print the signed-in user found in a storage dump",
		Long: `Reads a JSON object of storage keys and values and prints the user the
storefront would consider signed in, or null. With --clear the known session
keys are removed from the file first, as a storefront logout does.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if clearKeys {
				return clearSession(cmd.OutOrStdout(), file)
			}
			if !watch {
				snap, err := localstore.LoadFile(file)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resolveResult(session.Resolve(snap)))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return watchSession(ctx, cmd.OutOrStdout(), file, interval, newLogger())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "storage dump (JSON object)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and print every change")
	cmd.Flags().BoolVar(&clearKeys, "clear", false, "remove the known session keys from the file")
	cmd.Flags().DurationVar(&interval, "interval", cfg.SessionPollInterval, "poll interval in watch mode (defaults to $SESSION_POLL_INTERVAL)")
	_ = cmd.MarkFlagRequired("file")
	cmd.MarkFlagsMutuallyExclusive("watch", "clear")
	return cmd
}

// clearSession drops the candidate keys from the dump at path and prints what
// still resolves afterwards. Hosted-auth token keys are left alone.
func clearSession(out io.Writer, path string) error {
	doc, err := localstore.OpenDocument(path)
	if err != nil {
		return err
	}
	session.ClearKnownKeys(doc)
	if err := doc.Save(); err != nil {
		return err
	}
	return printJSON(out, resolveResult(session.Resolve(doc)))
}

func resolveResult(r session.Result) *domain.SessionResolveResponse {
	return &domain.SessionResolveResponse{User: r.User, Key: r.Key, Strategy: string(r.Strategy)}
}

// readUser loads path and resolves it. Unreadable files read as signed out.
func readUser(path string) func() *domain.SessionUser {
	return func() *domain.SessionUser {
		snap, err := localstore.LoadFile(path)
		if err != nil {
			return nil
		}
		return session.ReadCurrentUser(snap)
	}
}

// watchSession polls path and also re-reads it on file system events.
func watchSession(ctx context.Context, out io.Writer, path string, interval time.Duration, logger *zap.Logger) error {
	w := session.NewWatcher(readUser(path), interval)
	unsubscribe := w.Subscribe(func(u *domain.SessionUser) {
		if err := printJSON(out, u); err != nil {
			logger.Warn("print session", zap.Error(err))
		}
	})
	defer unsubscribe()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fsw.Close()

	// Editors replace files on save, so watch the directory.
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target := filepath.Clean(path)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
					logger.Debug("storage dump changed", zap.String("op", ev.Op.String()))
					w.Notify()
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("file watcher error", zap.Error(err))
			}
		}
	}()

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
