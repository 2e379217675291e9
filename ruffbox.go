// Package ruffbox wires the pattern engine, tick driver, control-thread
// API, and RT-path playhead together behind one facade type, the way
// the teacher's own player.go wires a parser, sequencer, and audio
// backend behind Player.
package ruffbox

import (
	"sync"

	"github.com/drunkcoder/ruffbox-go/internal/audio"
	"github.com/drunkcoder/ruffbox-go/internal/controls"
	"github.com/drunkcoder/ruffbox-go/internal/effects"
	"github.com/drunkcoder/ruffbox-go/internal/params"
	"github.com/drunkcoder/ruffbox-go/internal/pattern"
	"github.com/drunkcoder/ruffbox-go/internal/playhead"
	"github.com/drunkcoder/ruffbox-go/internal/queue"
	"github.com/drunkcoder/ruffbox-go/internal/tick"
)

// Re-exported so callers never need to import the internal packages
// directly.
type (
	VoiceID    = controls.VoiceID
	BufferID   = controls.BufferID
	ParamID    = params.ID
	SourceType = params.SourceType
)

const (
	Sampler       = params.Sampler
	SineOsc       = params.SineOsc
	SineSynth     = params.SineSynth
	LFSawSynth    = params.LFSawSynth
	LFSquareSynth = params.LFSquareSynth
)

// Option configures an Engine at construction.
type Option func(*engineConfig)

type engineConfig struct {
	queueCapacity int
	tempoMs       float64
	lookaheadS    float64
	onParseError  func(lineNo int, line string, err error)
	onLateEvent   func(timestamp, nowS float64)
}

func defaultEngineConfig() engineConfig {
	return engineConfig{queueCapacity: 1024, tempoMs: 500, lookaheadS: 0.1}
}

// WithQueueCapacity sets the scheduling queue's capacity (rounded up to
// a power of 2).
func WithQueueCapacity(n int) Option {
	return func(c *engineConfig) { c.queueCapacity = n }
}

// WithTempoMS sets the tick driver's period in milliseconds.
func WithTempoMS(ms float64) Option {
	return func(c *engineConfig) { c.tempoMs = ms }
}

// WithLookaheadS sets the tick driver's scheduling lookahead in seconds.
func WithLookaheadS(s float64) Option {
	return func(c *engineConfig) { c.lookaheadS = s }
}

// WithOnParseError installs a diagnostic hook for pattern-text parse
// errors (§7 ParseError).
func WithOnParseError(fn func(lineNo int, line string, err error)) Option {
	return func(c *engineConfig) { c.onParseError = fn }
}

// WithOnLateEvent installs a diagnostic hook for triggers that arrive
// at or after their own dispatch time (§7 LateEvent).
func WithOnLateEvent(fn func(timestamp, nowS float64)) Option {
	return func(c *engineConfig) { c.onLateEvent = fn }
}

// Engine is the top-level facade: it owns the pattern Engine, the tick
// Driver, the non-RT Controls API, and the RT-path Playhead, and wires
// triggers from pattern evaluation through to playback.
type Engine struct {
	mu sync.Mutex

	sampleRate float64
	queue      *queue.Queue
	pattern    *pattern.Engine
	controls   *controls.Controls
	playhead   *playhead.Playhead
	driver     *tick.Driver

	sampleNames map[string]controls.BufferID
}

// NewEngine creates a fully wired Engine rendering at sampleRate.
func NewEngine(sampleRate float64, opts ...Option) *Engine {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	q := queue.New(cfg.queueCapacity)

	var phOpts []playhead.Option
	if cfg.onLateEvent != nil {
		phOpts = append(phOpts, playhead.WithOnLateEvent(cfg.onLateEvent))
	}
	ph := playhead.New(sampleRate, q, phOpts...)

	ctrl := controls.New(sampleRate, q, controls.WithMasterEffects(ph.MasterReverb(), ph.MasterDelay()))

	var patOpts []pattern.Option
	if cfg.onParseError != nil {
		patOpts = append(patOpts, pattern.WithOnParseError(cfg.onParseError))
	}
	pat := pattern.NewEngine(patOpts...)

	e := &Engine{
		sampleRate:  sampleRate,
		queue:       q,
		pattern:     pat,
		controls:    ctrl,
		playhead:    ph,
		sampleNames: make(map[string]controls.BufferID),
	}

	sink := tick.SinkFunc(e.handleTrigger)
	e.driver = tick.NewDriver(pat, tick.NewSystemClock(), sink,
		tick.WithTempoMS(cfg.tempoMs), tick.WithLookaheadS(cfg.lookaheadS))

	return e
}

// LoadSample registers a named sample buffer so pattern events by that
// name resolve to a Sampler voice over it (§4.8 source-type dispatch:
// any event name other than sine/saw/sqr resolves to Sampler).
func (e *Engine) LoadSample(name string, samples []float32, sampleRate float64) BufferID {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.controls.LoadSample(samples, sampleRate)
	e.sampleNames[name] = id
	return id
}

// Evaluate recompiles the live pattern text (§4.7).
func (e *Engine) Evaluate(text string) {
	e.pattern.Evaluate(text)
}

// Start begins the tick driver, which begins translating pattern ticks
// into triggers submitted to the Playhead's queue.
func (e *Engine) Start() { e.driver.Start() }

// Stop halts the tick driver; already-queued triggers still dispatch.
func (e *Engine) Stop() { e.driver.Stop() }

// Process renders exactly one audio block at streamTimeS (§6 process
// callback), delegating to the Playhead.
func (e *Engine) Process(streamTimeS float64) ([2][playhead.BlockSize]float64, error) {
	return e.playhead.Process(streamTimeS), nil
}

// NewAudioSource wraps the Engine's Playhead in a SampleSource suitable
// for internal/audio.NewPlayer.
func (e *Engine) NewAudioSource() *audio.PlayheadSource {
	return audio.NewPlayheadSource(e.playhead, e.sampleRate)
}

// SetMasterParameter assigns a master reverb/delay parameter (§4.4).
func (e *Engine) SetMasterParameter(id ParamID, value float64) {
	e.controls.SetMasterParameter(id, value)
}

// handleTrigger is the tick.Sink that turns a trigger Record into a
// prepared, parameterized, and triggered voice.
func (e *Engine) handleTrigger(rec tick.Record) {
	e.mu.Lock()
	var bufID controls.BufferID
	if rec.SourceType == params.Sampler {
		id, ok := e.sampleNames[rec.SampleID]
		if !ok {
			e.mu.Unlock()
			return
		}
		bufID = id
	}
	e.mu.Unlock()

	id := e.controls.PrepareInstance(rec.SourceType, bufID)
	for name, v := range rec.Params {
		pid, ok := params.LookupGrammarName(name)
		if !ok {
			pid, ok = params.Lookup(name)
		}
		if ok {
			_ = e.controls.SetInstanceParameter(id, pid, float64(v))
		}
	}
	_ = e.controls.Trigger(id, rec.Timestamp)
}

// Reverb exposes the master reverb, for effects parameter tuning
// outside SetMasterParameter's fixed param-ID surface.
func (e *Engine) Reverb() *effects.Reverb { return e.playhead.MasterReverb() }

// Delay exposes the master delay.
func (e *Engine) Delay() *effects.Delay { return e.playhead.MasterDelay() }
