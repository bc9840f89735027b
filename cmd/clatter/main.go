// Command clatter is a terminal physics sandbox whose collisions play notes
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/clatter/audio"
	"github.com/lixenwraith/clatter/tune"
)

func main() {
	configPath := flag.String("config", "", "Tunables TOML file")
	debugLog := flag.Bool("debug", false, "Write logs to logs/clatter.log")
	samplePath := flag.String("sample", "", "Hit sample WAV file (overrides CLATTER_HIT_SAMPLE)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random spawn seed")
	flag.Parse()

	if logFile := setupLogging(*debugLog); logFile != nil {
		defer logFile.Close()
	}

	store := tune.NewStore(tune.Defaults())
	if *configPath != "" {
		if err := tune.LoadFile(*configPath, store); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg := audio.LoadAudioConfig()
	if *samplePath != "" {
		cfg.HitSamplePath = *samplePath
	}
	engine := audio.NewAudioEngine(cfg, audio.HitSample(cfg))
	if err := engine.Start(); err != nil {
		log.Printf("[audio] start: %v", err)
	}
	defer engine.Stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal before reporting a crash
	defer func() {
		r := recover()
		screen.Fini()
		if r != nil {
			fmt.Fprintf(os.Stderr, "\nCLATTER CRASHED: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	newApp(screen, store, engine, *seed).run()
}
