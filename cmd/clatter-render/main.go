// Command clatter-render drops objects headlessly and writes the collision audio to a WAV file
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/lixenwraith/clatter/audio"
	"github.com/lixenwraith/clatter/parameter"
	"github.com/lixenwraith/clatter/tune"
)

func main() {
	seconds := flag.Float64("seconds", 5, "Simulated duration in seconds")
	spheres := flag.Int("spheres", 4, "Spheres to drop")
	boxes := flag.Int("boxes", 3, "Boxes to drop")
	seed := flag.Int64("seed", 1, "Random spawn seed")
	out := flag.String("out", "clatter.wav", "Output WAV path")
	configPath := flag.String("config", "", "Tunables TOML file")
	samplePath := flag.String("sample", "", "Hit sample WAV file")
	rate := flag.Int("rate", parameter.AudioSampleRate, "Output sample rate")
	verbose := flag.Bool("v", false, "Log spawns and hits to stderr")
	flag.Parse()

	log.SetFlags(0)
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	store := tune.NewStore(tune.Defaults())
	if *configPath != "" {
		if err := tune.LoadFile(*configPath, store); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg := &audio.AudioConfig{SampleRate: *rate, HitSamplePath: *samplePath}
	renderer := audio.NewOfflineRenderer(*rate, audio.HitSample(cfg))

	s := script{Seconds: *seconds, Spheres: *spheres, Boxes: *boxes, Seed: *seed}
	res, err := s.run(store, renderer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Render failed: %v\n", err)
		os.Exit(1)
	}

	if err := renderer.WriteWAV(*out); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", *out, err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d frames, %d steps (%.2fs simulated), %d hits (%d audible), %.2fs of audio\n",
		*out, res.Frames, res.Steps, res.SimTime, res.Hits, res.Audible, float64(renderer.Frames())/float64(*rate))
}
