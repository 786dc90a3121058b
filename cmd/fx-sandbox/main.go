// Command fx-sandbox drives the pooled effect scene in a terminal
// Move with arrows or hjkl, fire with a/s/d, p pauses, m mutes, q quits
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/t-barz/slimeking-sub004/audio"
	"github.com/t-barz/slimeking-sub004/config"
	"github.com/t-barz/slimeking-sub004/core"
	"github.com/t-barz/slimeking-sub004/effect"
	"github.com/t-barz/slimeking-sub004/engine"
	"github.com/t-barz/slimeking-sub004/parameter"
	"github.com/t-barz/slimeking-sub004/render"
	"github.com/t-barz/slimeking-sub004/service"
	"github.com/t-barz/slimeking-sub004/status"
	"github.com/t-barz/slimeking-sub004/telemetry"
)

var (
	configFlag = flag.String("config", "", "YAML effect configuration, empty uses built-in defaults")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/fx-sandbox.log")
	statsFlag  = flag.Bool("stats", false, "Print pool and controller stats as JSON on exit")
	muteFlag   = flag.Bool("mute", false, "Start with audio muted")
	otlpFlag   = flag.String("otlp", "", "OTLP/HTTP collector endpoint for status metrics")
	serveFlag  = flag.String("serve", "", "Address to stream status snapshots over websocket, e.g. :8090")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
	}

	audioCfg := audio.DefaultConfig()
	audioCfg.Enabled = !*muteFlag
	sound := audio.NewService(audioCfg)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	core.SetCrashCleanup(screen.Fini)
	defer screen.Fini()

	reg := status.NewRegistry()
	anchor := &effect.Anchor{}
	scene, err := engine.NewScene(cfg, engine.SceneOptions{
		Cues:      sound,
		Placement: anchor,
		Status:    reg,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to build scene: %v\n", err)
		os.Exit(1)
	}

	categories := make([]core.Category, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		categories = append(categories, core.Category(c.Name))
	}

	view := render.NewRenderer(screen)
	var loop *engine.Loop
	loop = engine.NewLoop(engine.LoopConfig{
		Interval: cfg.TickInterval.Std(),
		Step:     scene.Update,
		Frame: func() {
			view.Draw(render.Frame{
				Effects: scene.Effects,
				Anchor:  anchor,
				Status: render.StatusLine(scene.Effects, render.Status{
					Categories: categories,
					Paused:     loop.Paused(),
					Muted:      sound.Muted(),
					Silent:     sound.Silent(),
				}),
				Warn: scene.Effects.Fallbacks() > 0,
			})
		},
		Status: reg,
	})

	session := scene.Session.String()
	hub := service.NewHub()
	hub.Register(telemetryService(telemetry.Config{Endpoint: *otlpFlag}, reg, session))
	if *serveFlag != "" {
		hub.Register(statsServer(*serveFlag, reg, session))
	}
	hub.Register(sound)
	hub.Register(service.Func("loop", []string{sound.Name()},
		func(context.Context) error {
			loop.Start()
			return nil
		},
		loop.Stop))

	startCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = hub.StartAll(startCtx)
	cancel()
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	events := make(chan tcell.Event, 256)
	quit := make(chan struct{})
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	})

	sb := &sandbox{screen: screen, view: view, loop: loop, scene: scene, anchor: anchor, sound: sound}
	sb.run(events)
	close(quit)

	if err := hub.StopAll(); err != nil {
		core.HandleCrash(err)
	}
	retired := scene.Close()
	log.Printf("fx-sandbox: exit after %d ticks, %d effects retired", loop.Ticks(), retired)

	screen.Fini()
	if *statsFlag {
		if err := scene.WriteStats(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write stats: %v\n", err)
		}
	}
}

// sandbox routes terminal input into the loop goroutine
type sandbox struct {
	screen tcell.Screen
	view   *render.Renderer
	loop   *engine.Loop
	scene  *engine.Scene
	anchor *effect.Anchor
	sound  *audio.Service
}

// run dispatches input until quit or the loop dies
func (sb *sandbox) run(events <-chan tcell.Event) {
	for {
		select {
		case <-sb.loop.Done():
			return

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				sb.loop.Submit(func() {
					sb.view.Resize()
					sb.screen.Sync()
				})

			case *tcell.EventKey:
				if !sb.handleKey(keyCommand(ev)) {
					return
				}
			}
		}
	}
}

// handleKey applies one command, returns false on quit
func (sb *sandbox) handleKey(cmd command) bool {
	switch cmd {
	case cmdQuit:
		return false
	case cmdPause:
		sb.loop.TogglePause()
	case cmdMute:
		sb.sound.ToggleMute()
	case cmdBasicAttack:
		sb.fire(parameter.CategoryBasicAttack)
	case cmdSpecialAttack:
		sb.fire(parameter.CategorySpecialAttack)
	case cmdImpact:
		sb.fire(parameter.CategoryImpact)
	default:
		if dx, dy, ok := moveDelta(cmd); ok {
			sb.loop.Submit(func() { sb.anchor.Move(dx, dy) })
		}
	}
	return true
}

// fire performs category on the loop goroutine, ignored while paused
func (sb *sandbox) fire(category core.Category) {
	ok := sb.loop.Submit(func() {
		if sb.loop.Paused() {
			return
		}
		sb.scene.Effects.Fire(category)
	})
	if !ok {
		log.Printf("fx-sandbox: command queue full, %s dropped", category)
	}
}
