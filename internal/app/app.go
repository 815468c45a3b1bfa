package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/petgallery/internal/config"
	"github.com/five82/petgallery/internal/gallery"
	"github.com/five82/petgallery/internal/notify"
	"github.com/five82/petgallery/internal/petstore"
	"github.com/five82/petgallery/internal/prefs"
	"github.com/five82/petgallery/internal/thumb"
	"github.com/five82/petgallery/internal/ui"
)

// Options configure the petgallery application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/petgallery/prefs.toml
	APIURL     string // overrides api_url from the config file
}

// Run boots the gallery TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	// Cancelled on quit to abort image downloads still in flight.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if api := strings.TrimSpace(opts.APIURL); api != "" {
		cfg.APIURL = api
	}

	logger, err := newLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, _ := prefs.Load(prefsPath)

	client, err := petstore.NewClient(cfg.APIURL,
		petstore.WithTimeout(cfg.RequestTimeout),
		petstore.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("init pet store client: %w", err)
	}

	logger.Info("starting petgallery",
		zap.String("api_url", client.BaseURL()),
		zap.Bool("reconcile_on_failure", cfg.ReconcileOnFailure),
	)

	ctrl := gallery.New(gallery.Options{
		Store:              client,
		Notifications:      notify.New(cfg.NotificationDuration),
		Logger:             logger,
		ReconcileOnFailure: cfg.ReconcileOnFailure,
	})

	uiOpts := ui.Options{
		Context:    ctx,
		Controller: ctrl,
		Logger:     logger,
		APIURL:     client.BaseURL(),
		LogPath:    cfg.LogFile,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  prefsPath,
		Compact:    userPrefs.Compact,
		ShowImages: cfg.ShowImages,
	}

	if cfg.ShowImages {
		loader := thumb.NewLoader(thumb.Options{
			Context:    ctx,
			Logger:     logger,
			MaxWorkers: cfg.MaxImageWorkers,
			Width:      ui.CardImageWidth,
			Height:     ui.CardImageHeight,
		})
		defer func() {
			cancel()
			loader.Close()
		}()
		uiOpts.Thumbnails = loader
	}

	if err := ui.Run(uiOpts); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("petgallery stopped")
	return nil
}
