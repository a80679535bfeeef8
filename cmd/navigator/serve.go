package main

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/ritzau/network-navigator/pkg/logging"
	"github.com/ritzau/network-navigator/pkg/metrics"
	"github.com/ritzau/network-navigator/pkg/pubsub"
	"github.com/ritzau/network-navigator/pkg/store"
	"github.com/ritzau/network-navigator/pkg/watcher"
	"github.com/ritzau/network-navigator/pkg/web"
	"github.com/spf13/cobra"
)

const (
	debounceQuiet   = 250 * time.Millisecond
	debounceMaxWait = 2 * time.Second
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			return a.serve(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.IntP("port", "p", 8080, "port to listen on")
	f.Bool("watch", false, "reload the document when it changes")
	f.Bool("open", false, "open the viewer in a browser")
	f.Float64("zoom", 1.0, "initial zoom level")
	f.Float64("zoom-min", 0.5, "smallest zoom offered by the slider")
	f.Float64("zoom-max", 2.0, "largest zoom offered by the slider")
	f.Float64("zoom-step", 0.1, "slider step")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	reg := metrics.DefaultRegistry()

	st := store.New()
	st.OnLoad = func(_ string, err error) { reg.RecordDocumentLoad(err) }

	server, err := web.NewServer(web.Options{
		Store:    st,
		Pipeline: a.pipeline,
		Themes:   a.themes,
		Zoom:     a.cfg.ZoomRange(),
		Metrics:  reg,
	})
	if err != nil {
		return fmt.Errorf("invalid zoom settings: %w", err)
	}

	reportStatus(server, pubsub.StateLoading, "loading "+a.cfg.Document)
	if _, err := st.Reload(a.cfg.Document); err != nil {
		if !a.cfg.Watch {
			return err
		}
		// Keep serving; the watcher picks the document up once it is fixed.
		reportStatus(server, pubsub.StateError, err.Error())
	} else {
		reportStatus(server, pubsub.StateReady, "loaded "+a.cfg.Document)
	}

	if a.cfg.Watch {
		if err := a.watch(ctx, st, server); err != nil {
			return err
		}
	}

	url := fmt.Sprintf("http://localhost:%d", a.cfg.Port)
	if a.cfg.OpenBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			openBrowser(url)
		}()
	}

	return server.Start(ctx, a.cfg.Port)
}

// watch reloads the store whenever the document file settles after a change.
func (a *app) watch(ctx context.Context, st *store.Store, server *web.Server) error {
	fw, err := watcher.NewFileWatcher(a.cfg.Document)
	if err != nil {
		return err
	}
	if err := fw.Start(ctx); err != nil {
		return err
	}

	debouncer := watcher.NewDebouncer(fw.Events(), debounceQuiet, debounceMaxWait)
	debouncer.Start(ctx)

	go func() {
		for event := range debouncer.Output() {
			change := watcher.AnalyzeChanges(event)
			logging.Info("document changed", "path", fw.Path(), "type", event.Type.String(), "files", len(change.ChangedFiles))

			switch {
			case change.NeedReload:
				if _, err := st.Reload(a.cfg.Document); err != nil {
					reportStatus(server, pubsub.StateError, err.Error())
					continue
				}
				reportStatus(server, pubsub.StateReady, "reloaded "+a.cfg.Document)
			case change.KeepCurrent:
				logging.Warn("document removed, serving last loaded version", "path", a.cfg.Document)
				reportStatus(server, pubsub.StateRemoved, a.cfg.Document+" was removed")
			}
		}
	}()
	return nil
}

// reportStatus tells viewers about the document. Publishing only fails once
// the server is shutting down, which needs no warning.
func reportStatus(server *web.Server, state, message string) {
	err := server.PublishDocumentStatus(state, message)
	if err != nil && !errors.Is(err, pubsub.ErrClosed) {
		logging.Warn("failed to publish document status", "state", state, "error", err)
	}
}

func openBrowser(url string) {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "linux":
		cmd = "xdg-open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		logging.Warn("cannot open browser on this platform", "os", runtime.GOOS)
		return
	}

	if err := exec.Command(cmd, args...).Start(); err != nil {
		logging.Warn("failed to open browser", "error", err)
	}
}
