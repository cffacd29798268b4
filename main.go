package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"albumlabel/label"
)

var (
	Version   = "unknown"
	BuildTime = "unknown"
)

func main() {
	defaultConfigDir := "./config"
	if _, err := os.Stat(defaultConfigDir); err != nil && runtime.GOOS == "linux" {
		if _, err := os.Stat("/etc/albumlabel"); err == nil {
			defaultConfigDir = "/etc/albumlabel"
		}
	}

	configFlag := flag.String("config", "", "Configuration name (without extension); empty uses built-in defaults")
	configDirFlag := flag.String("config-dir", defaultConfigDir, "Configuration directory")
	listConfigsFlag := flag.Bool("list-configs", false, "List available configuration files")
	inFlag := flag.String("in", "", "Photo directory to scan for albums")
	outFlag := flag.String("out", "", "Directory the label PNGs are written to")
	serveFlag := flag.String("serve", "", "Serve label previews on this address, e.g. localhost:12800")
	watchFlag := flag.Bool("watch", false, "Re-render labels when the photo directory changes")
	logFileFlag := flag.String("log-file", "", "Also log to this file (rotated)")
	debugFlag := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	initLogger(*logFileFlag, *debugFlag)
	logInfo("Album Label v%s (%s)", Version, BuildTime)

	configManager := NewConfigManager(*configDirFlag)

	if *listConfigsFlag {
		configs, err := configManager.ListConfigs()
		if err != nil {
			logFatal("Config enumeration failed: %v", err)
		}
		fmt.Println("Available configurations:")
		for _, config := range configs {
			fmt.Printf("  %s\n", config)
		}
		return
	}

	if *inFlag == "" && *serveFlag == "" {
		logError("Nothing to do")
		fmt.Println("Usage: albumlabel -in <photo dir> [-out <dir>] [-config <name>] [-watch] [-serve <addr>]")
		fmt.Println("Use -list-configs to enumerate available configurations")
		return
	}

	config := DefaultConfig()
	if *configFlag != "" {
		loaded, err := configManager.LoadConfig(*configFlag)
		if err != nil {
			logFatal("Config load failed '%s': %v", *configFlag, err)
		}
		config = loaded
	}

	renderer, err := newRenderer(config)
	if err != nil {
		logFatal("Renderer initialization failed: %v", err)
	}
	dims := renderer.Dimensions()
	logInfo("Config: %s | Label: %dx%d | Grouping: %s | View: %s",
		config.Name, dims.BitmapWidth, dims.BitmapHeight, config.GetGrouping(), config.GetView())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var albums []*Album
	var outputManager *OutputManager
	if *inFlag != "" {
		albums, err = ScanAlbums(*inFlag)
		if err != nil {
			logFatal("Scan failed: %v", err)
		}

		outDir := *outFlag
		if outDir == "" {
			outDir = config.OutputDir
		}
		if outDir == "" {
			outDir = "labels"
		}
		handler, err := NewFileOutputHandler(outDir)
		if err != nil {
			logFatal("Output initialization failed: %v", err)
		}
		outputManager = NewOutputManager()
		outputManager.AddHandler(handler)
		defer outputManager.Close()

		if err := renderAlbums(ctx, renderer, albums, config, outputManager); err != nil {
			if errors.Is(err, context.Canceled) {
				logInfo("Shutdown initiated")
				return
			}
			logError("Render failed: %v", err)
		}
	}

	var server *PreviewServer
	if *serveFlag != "" {
		server = NewPreviewServer(renderer, config)
		server.SetAlbums(albums)
	}

	if *watchFlag && *inFlag == "" {
		logWarn("-watch needs -in, ignoring")
	}

	var wg sync.WaitGroup
	if *watchFlag && *inFlag != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rebuild := func(updated []*Album) {
				if server != nil {
					server.SetAlbums(updated)
				}
				if err := renderAlbums(ctx, renderer, updated, config, outputManager); err != nil && !errors.Is(err, context.Canceled) {
					logError("Render failed: %v", err)
				}
			}
			if err := watch(ctx, *inFlag, albums, rebuild); err != nil {
				logError("Watch failed: %v", err)
			}
		}()
	}

	if server != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := server.Start(ctx, *serveFlag); err != nil {
				logError("%v", err)
				stop()
			}
		}()
	}

	wg.Wait()
	if ctx.Err() != nil {
		logInfo("Shutdown initiated")
	}
}

func newRenderer(config *LabelConfig) (*label.LabelRenderer, error) {
	var opts []label.Option
	if config.IconDir != "" {
		opts = append(opts, label.WithIconDecoder(label.DirIcons{Dir: config.IconDir}))
	}

	renderer, err := label.NewLabelRenderer(config.ToSpec(resolveFontPath(config.Font)), opts...)
	if err != nil {
		return nil, err
	}
	renderer.SetDimensions(config.GetSlotWidth(), config.GetSlotHeight(), config.GetGrouping())
	return renderer, nil
}
