// Command webpane opens a native webview window. It doubles as the
// reference embedder for the backend packages.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bnema/webpane/internal/config"
	"github.com/bnema/webpane/internal/gtk"
	"github.com/bnema/webpane/internal/logging"
	"github.com/bnema/webpane/internal/router"
	"github.com/bnema/webpane/internal/session"
	"github.com/bnema/webpane/internal/toolkit"
)

// Build-time variables (set via ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

var (
	flagTitle      string
	flagWidth      int
	flagHeight     int
	flagFrameless  bool
	flagFullscreen bool
	flagOnTop      bool
	flagDebug      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "webpane",
		Short:   "A minimal native window for web content",
		Version: fmt.Sprintf("%s (%s, %s)", version, commit, runtime.Version()),
	}

	openCmd := &cobra.Command{
		Use:   "open <url>",
		Short: "Open a window on the given URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runOpen(args[0])
		},
	}
	openCmd.Flags().StringVar(&flagTitle, "title", "webpane", "window title")
	openCmd.Flags().IntVar(&flagWidth, "width", 0, "window width (0 = config default)")
	openCmd.Flags().IntVar(&flagHeight, "height", 0, "window height (0 = config default)")
	openCmd.Flags().BoolVar(&flagFrameless, "frameless", false, "no window decorations")
	openCmd.Flags().BoolVar(&flagFullscreen, "fullscreen", false, "start fullscreen")
	openCmd.Flags().BoolVar(&flagOnTop, "on-top", false, "keep the window above others")
	openCmd.Flags().BoolVar(&flagDebug, "debug", false, "debug logging")

	rootCmd.AddCommand(openCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runOpen(url string) error {
	// The calling thread becomes the UI loop thread.
	runtime.LockOSThread()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.NewFromEnv()
	if flagDebug || cfg.Debug {
		logger = logger.Level(zerolog.DebugLevel)
	}

	sess, err := session.New(session.MasterUID)
	if err != nil {
		return err
	}
	sess.Title = flagTitle
	sess.URL = url
	sess.Geometry = session.Geometry{
		Width:     orDefault(flagWidth, cfg.Window.Width),
		Height:    orDefault(flagHeight, cfg.Window.Height),
		MinWidth:  cfg.Window.MinWidth,
		MinHeight: cfg.Window.MinHeight,
		Resizable: true,
	}
	sess.Flags.Frameless = flagFrameless
	sess.Flags.Fullscreen = flagFullscreen
	sess.Flags.OnTop = flagOnTop
	sess.Flags.TextSelect = true
	sess.BackgroundColor = cfg.Window.BackgroundColor
	sess.UserAgent = cfg.UserAgent

	loop := gtk.NewLoop()

	var opener toolkit.Opener
	if o, err := toolkit.NewXDGOpener(); err == nil {
		opener = o
	} else {
		logger.Warn().Err(err).Msg("external link opening disabled")
	}

	mode := router.SingleProcess
	if cfg.Multiprocess {
		mode = router.MultiProcess
	}

	r := router.New(router.Options{
		Mode:    mode,
		Loop:    loop,
		Factory: &gtk.Factory{Logger: logger},
		Opener:  opener,
		Strings: toolkit.DefaultStrings(),
		Logger:  logger,
	})

	handle, err := r.CreateWindow(sess)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	if handle != nil {
		// Multiprocess: the worker owns the loop; wait for it.
		<-handle.Done()
		return nil
	}

	r.Run()
	return nil
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
