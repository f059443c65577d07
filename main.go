package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"viewer/internal/debug"
	"viewer/internal/decode"
	"viewer/internal/geom"
	"viewer/internal/imagepath"
	"viewer/internal/nav"
	"viewer/internal/session"
)

const appName = "Image Viewer"

// resolveInitial turns the command line argument into the first image to
// show. An archive opens at its first image entry in the configured order.
func resolveInitial(path string, strategy nav.SortStrategy) (imagepath.ImagePath, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return imagepath.ImagePath{}, err
	}
	if !imagepath.IsArchiveExt(absPath) {
		return imagepath.File(absPath), nil
	}

	entries, err := nav.ArchiveLister{}.List(imagepath.ImagePath{ArchivePath: absPath})
	if err != nil {
		return imagepath.ImagePath{}, fmt.Errorf("reading archive %s: %w", absPath, err)
	}
	if len(entries) == 0 {
		return imagepath.ImagePath{}, fmt.Errorf("no images in archive %s", absPath)
	}
	return strategy.Sort(entries)[0].Path, nil
}

// runSession is the body of the session goroutine.
func runSession(b *ebitenBackend, config Config, arg string) error {
	explainExit := false
	if arg == "" {
		path, err := chooseFile(b)
		if err != nil {
			return err
		}
		arg = path
		explainExit = true
	}

	strategy := nav.GetSortStrategy(config.SortMethod)
	initial, err := resolveInitial(arg, strategy)
	if err != nil {
		return fmt.Errorf("%w %s: %w", session.ErrInitialLoad, arg, err)
	}
	debug.Logf("opening %s, sorting by %s", initial, strategy.Name())

	decoder := decode.NewCachedDecoder(decode.FileDecoder{}, config.CacheSize)
	seq := nav.NewSequencer(nav.NewSourceLister(), strategy)

	opts := config.sessionOptions()
	opts.AppName = appName
	opts.ExplainExit = explainExit

	s := session.New(b, decoder, seq, opts)
	defer s.Close()
	if err := s.Open(initial); err != nil {
		return err
	}
	return s.Run()
}

func setupWindow() geom.Size {
	ebiten.SetWindowTitle(appName)
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetScreenClearedEveryFrame(false)
	ebiten.SetRunnableOnUnfocused(true)

	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowPosition(0, 0)
	ebiten.MaximizeWindow()
	return geom.Size{W: float64(w), H: float64(h)}
}

func run() int {
	debugFlag := flag.Bool("debug", false, "enable debug logging")
	configPath := flag.String("config", getConfigPath(), "configuration file")
	writeConfig := flag.Bool("write-config", false, "write the effective configuration to the configuration file and exit")
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s [-debug] [-config path] [-write-config] [filepath]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		fmt.Fprintln(out, "sort_method values:")
		for _, strategy := range nav.GetAllSortStrategies() {
			fmt.Fprintf(out, "  %d  %s\n", strategy.ID(), strategy.Name())
		}
	}
	flag.Parse()

	result := loadConfigFromPath(*configPath)
	config := result.Config
	debug.SetEnabled(debug.Enabled() || *debugFlag || config.Debug)
	debug.Logf("config %s: %s", *configPath, result.Status)

	if *writeConfig {
		if err := saveConfigToPath(config, *configPath); err != nil {
			log.Printf("Error: %v", err)
			return 1
		}
		return 0
	}

	if flag.NArg() > 1 {
		flag.Usage()
		return 1
	}
	arg := flag.Arg(0)

	if err := InitGraphics(); err != nil {
		log.Printf("Error: Failed to load font: %v", err)
		return 1
	}

	monitor := setupWindow()
	b := newEbitenBackend(MouseSettings{WheelInverted: config.WheelInverted}, monitor, func(b *ebitenBackend) error {
		return runSession(b, config, arg)
	})

	if err := ebiten.RunGameWithOptions(b, &ebiten.RunGameOptions{ScreenTransparent: true}); err != nil {
		log.Printf("Error: %v", err)
		return 1
	}

	if err := b.Err(); err != nil && !errors.Is(err, session.ErrQuit) {
		log.Printf("Error: %v", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
