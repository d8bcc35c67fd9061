// Package src wires all the artframe components together. Main is the real
// main function of the program. It lives here because the project's root
// main.go only embeds the static files and calls it.
package src

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/ironsmile/artframe/src/acquire"
	"github.com/ironsmile/artframe/src/art"
	"github.com/ironsmile/artframe/src/artwork"
	"github.com/ironsmile/artframe/src/cache"
	"github.com/ironsmile/artframe/src/config"
	"github.com/ironsmile/artframe/src/control"
	"github.com/ironsmile/artframe/src/daemon"
	"github.com/ironsmile/artframe/src/helpers"
	"github.com/ironsmile/artframe/src/publish"
	"github.com/ironsmile/artframe/src/retry"
	"github.com/ironsmile/artframe/src/scaler"
	"github.com/ironsmile/artframe/src/version"
	"github.com/ironsmile/artframe/src/webserver"
)

const (
	// cacheIndexName is the name of the sqlite database in the cache directory.
	cacheIndexName = "cache.db"

	// blobsDirName is the directory within the cache directory where the
	// cached images are stored.
	blobsDirName = "blobs"

	controlQRSize = 500
)

var (
	configFile  string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "",
		"Configuration file. JSON or YAML. Default is [user_path]/config.json")
	flag.BoolVar(&showVersion, "v", false, "Show version and build information.")
}

// Main is the function which is run in the project's root main.go file. For
// all intent and purposes this is the main function. httpRoot holds the static
// control UI and sqlFiles the cache migrations.
func Main(httpRoot, sqlFiles fs.FS) {
	flag.Parse()

	if showVersion {
		version.Print(os.Stdout)
		return
	}

	appfs := afero.NewOsFs()

	cfgPath := configFile
	if cfgPath != "" {
		absPath, err := filepath.Abs(cfgPath)
		if err != nil {
			log.Fatalf("Finding the configuration file: %s\n", err)
		}
		cfgPath = absPath
	}

	cfg, err := config.Load(appfs, cfgPath)
	if err != nil {
		log.Fatalf("Loading configuration: %s\n", err)
	}

	if cfg.LogFile != "" && !daemon.Debug {
		if err := helpers.SetLogsFile(appfs, cfg.LogFile); err != nil {
			log.Fatalf("Setting the log file: %s\n", err)
		}
	}

	if daemon.PidFile != "" {
		if err := helpers.SetUpPidFile(appfs, daemon.PidFile); err != nil {
			log.Fatalf("Pid file error: %s\n", err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), daemon.StopSignals...)
	err = run(ctx, cfg, appfs, httpRoot, sqlFiles)
	cancel()

	if daemon.PidFile != "" {
		helpers.RemovePidFile(appfs, daemon.PidFile)
	}

	if err != nil {
		log.Printf("artframe stopped with error: %s\n", err)
		os.Exit(1)
	}
	log.Println("artframe stopped.")
}

// run builds all the components and serves until ctx is done.
func run(
	ctx context.Context,
	cfg config.Config,
	appfs afero.Fs,
	httpRoot fs.FS,
	sqlFiles fs.FS,
) error {
	blobs, err := newBlobs(cfg, appfs)
	if err != nil {
		return err
	}

	store, err := cache.Open(
		ctx,
		filepath.Join(cfg.Cache.Dir, cacheIndexName),
		sqlFiles,
		blobs,
		cfg.Cache.CapacityBytes(),
	)
	if err != nil {
		return fmt.Errorf("opening the artwork cache: %w", err)
	}
	defer store.Close()

	providers, err := art.NewProviders(cfg, version.UserAgent())
	if err != nil {
		return err
	}

	normalizer := scaler.New(ctx, cfg.Image.JPEGQuality)
	defer normalizer.Cancel()

	if err := appfs.MkdirAll(cfg.PublishDir, 0o755); err != nil {
		return fmt.Errorf("creating the publish directory: %w", err)
	}
	target := publish.NewTarget(appfs, cfg.PublishDir, publish.FilesFromConfig(cfg.Publish))
	status := publish.NewStatusFile(appfs, target.StatusPath())
	if err := status.Set(artwork.StatusRunning); err != nil {
		return fmt.Errorf("initializing the display status: %w", err)
	}

	if cfg.Publish.ControlQR {
		err := target.PublishControlQR(cfg.Publish.ControlURL, controlQRSize)
		if err != nil {
			log.Printf("Control QR code was not published: %s\n", err)
		}
	}

	coordinator := acquire.New(acquire.Options{
		Providers:  providers,
		Fetcher:    art.NewDownloader(version.UserAgent(), cfg.Download.TimeoutDuration()),
		Normalizer: normalizer,
		Cache:      store,
		Target:     target,
		Size:       cfg.Image.TargetSize,
		Retry: retry.Policy{
			MaxAttempts: cfg.Retry.MaxAttempts,
			BaseDelay:   cfg.Retry.InitialDelayDuration(),
			MaxDelay:    cfg.Retry.MaxDelayDuration(),
			Retryable:   art.Retryable,
		},
		HintEntries: cfg.Cache.HintEntries,
		HintTTL:     cfg.Cache.HintDuration(),
	})

	svc := control.NewService(coordinator, target, status, store)

	g, gctx := errgroup.WithContext(ctx)

	var events webserver.EventSource
	watcher, err := publish.NewWatcher(target, status)
	if err != nil {
		log.Printf("Display changes will not be streamed: %s\n", err)
	} else {
		defer watcher.Close()
		events = watcher
		g.Go(func() error {
			logDisplayChanges(gctx, watcher)
			return nil
		})
	}

	srv := webserver.NewServer(cfg, svc, events, httpRoot)
	g.Go(func() error {
		return srv.Serve(gctx)
	})

	return g.Wait()
}

// newBlobs returns the storage for the cached images.
func newBlobs(cfg config.Config, appfs afero.Fs) (cache.Blobs, error) {
	if cfg.Cache.S3.Enabled {
		blobs, err := cache.NewS3Blobs(cfg.Cache.S3)
		if err != nil {
			return nil, fmt.Errorf("creating S3 cache storage: %w", err)
		}
		log.Printf("Cached artwork is stored in bucket %s\n", cfg.Cache.S3.Bucket)
		return blobs, nil
	}

	return cache.NewFSBlobs(appfs, filepath.Join(cfg.Cache.Dir, blobsDirName)), nil
}

// logDisplayChanges writes every change of the display in the log until ctx
// is done.
func logDisplayChanges(ctx context.Context, watcher *publish.Watcher) {
	changes, unsubscribe := watcher.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case change := <-changes:
			if change.ArtworkChanged {
				log.Printf("Displaying %s by %s\n",
					change.Metadata.Title, change.Metadata.Artist)
			}
			if change.StatusChanged {
				log.Printf("Display status is %s\n", change.Status)
			}
		}
	}
}
