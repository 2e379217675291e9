// Command ruffboxplay is a minimal demo host: it loads a pattern-text
// file (or an inline string), evaluates it against a ruffbox.Engine,
// and plays the result through ebiten's audio backend.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/drunkcoder/ruffbox-go"
	intaudio "github.com/drunkcoder/ruffbox-go/internal/audio"
	"github.com/drunkcoder/ruffbox-go/internal/params"
)

const defaultPattern = "cyc >> bd sn bd sn\n@dur: cyc >> 0.1 0.15 0.1 0.2\n"

func main() {
	var (
		sampleRate  = flag.Int("sample-rate", 48000, "output sample rate")
		tempoMs     = flag.Float64("tempo-ms", 500, "tick period in milliseconds")
		patternPath = flag.String("file", "", "path to a pattern-text file")
		patternText = flag.String("pattern", "", "inline pattern text")
		volume      = flag.Float64("volume", 1.0, "master reverb wet scale (0-1); the reverb wet level is set to 0.2 times this value")
	)
	flag.Parse()

	text, err := resolvePatternInput(*patternPath, *patternText)
	if err != nil {
		log.Fatal(err)
	}

	engine := ruffbox.NewEngine(float64(*sampleRate),
		ruffbox.WithTempoMS(*tempoMs),
		ruffbox.WithOnParseError(func(lineNo int, line string, err error) {
			fmt.Fprintf(os.Stderr, "pattern line %d: %v (%q)\n", lineNo, err, line)
		}),
	)

	loadDemoSamples(engine, *sampleRate)
	engine.Evaluate(text)
	engine.SetMasterParameter(params.ReverbMix, *volume*0.2)

	source := engine.NewAudioSource()
	player, err := intaudio.NewPlayer(*sampleRate, source)
	if err != nil {
		log.Fatal(err)
	}

	engine.Start()
	player.Play()
	defer engine.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	select {
	case <-sig:
	case <-time.After(30 * time.Second):
	}
}

func resolvePatternInput(path, inline string) (string, error) {
	if strings.TrimSpace(inline) != "" {
		return inline, nil
	}
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return defaultPattern, nil
}

// loadDemoSamples seeds a couple of short synthesized one-shot buffers
// under the names the default pattern references, so the demo makes
// sound without requiring external sample files.
func loadDemoSamples(engine *ruffbox.Engine, sampleRate int) {
	engine.LoadSample("bd", synthesizeClick(sampleRate, 80), float64(sampleRate))
	engine.LoadSample("sn", synthesizeClick(sampleRate, 220), float64(sampleRate))
}

func synthesizeClick(sampleRate int, freqHz float64) []float32 {
	const durS = 0.15
	n := int(durS * float64(sampleRate))
	out := make([]float32, n)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		decay := 1.0 - t/durS
		out[i] = float32(decay * decay * sineSample(freqHz, t))
	}
	return out
}

func sineSample(freqHz, t float64) float64 {
	return math.Sin(2 * math.Pi * freqHz * t)
}
