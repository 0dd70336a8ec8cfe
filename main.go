package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/leonelquinteros/gotext"

	"wavemap/pkg/engine/input"
	"wavemap/pkg/engine/world"
	"wavemap/pkg/game/devtools"
	"wavemap/pkg/game/renderer"
	"wavemap/pkg/game/state"
	"wavemap/pkg/game/terrain"
)

func initGettext() {
	gotext.Configure("mo", "en_GB.utf8", "default")
}

// logMessage adds a formatted message to the session's message log
func logMessage(s *state.Session, msg string, a ...any) {
	s.AddMessage(fmt.Sprintf(msg, a...))
}

// renderNow redraws the full frame; used both by the main loop and as the
// between-steps observer during a run.
func renderNow(s *state.Session) {
	renderer.Clear()
	renderer.RenderFrame(s)
}

// stepOnce performs one collapse step and reports the outcome in the log.
func stepOnce(s *state.Session) {
	if !s.CanStep() {
		logMessage(s, gotext.Get("Map is complete. Reset to start over."))
		return
	}
	if err := s.RequestStep(); err != nil {
		logMessage(s, gotext.Get("Generation failed: %v"), err)
		return
	}
	if !s.CanStep() {
		logMessage(s, gotext.Get("Map complete after %d steps."), s.Steps())
	}
}

// generate runs the driver to completion, rendering between steps.
func generate(s *state.Session, pause time.Duration) {
	logMessage(s, gotext.Get("Generating..."))
	err := s.RequestGenerate(pause, func() {
		renderNow(s)
	})
	if err != nil {
		if errors.Is(err, world.ErrContradiction) {
			logMessage(s, gotext.Get("Contradiction: %v"), err)
		} else {
			logMessage(s, gotext.Get("Generation failed: %v"), err)
		}
		return
	}
	logMessage(s, gotext.Get("Map complete after %d steps."), s.Steps())
}

// resize parses and applies a "size W H" command.
func resize(s *state.Session, args []string) {
	if len(args) != 2 {
		logMessage(s, gotext.Get("Usage: size W H"))
		return
	}
	width, errW := strconv.Atoi(args[0])
	height, errH := strconv.Atoi(args[1])
	if errW != nil || errH != nil {
		logMessage(s, gotext.Get("Width and height must be integers."))
		return
	}
	if err := s.Resize(width, height); err != nil {
		logMessage(s, gotext.Get("Resize failed: %v"), err)
		return
	}
	logMessage(s, gotext.Get("Resized to %d×%d. Progress discarded."), width, height)
}

// dumpMap writes the debug dump and reports where it went.
func dumpMap(s *state.Session) {
	path, err := devtools.DumpMapToFile(s)
	if err != nil {
		logMessage(s, gotext.Get("Dump failed: %v"), err)
		return
	}
	logMessage(s, gotext.Get("Map dumped to %s"), path)
}

// processCommand handles one host command
func processCommand(s *state.Session, in string, pause time.Duration) {
	fields := strings.Fields(in)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "q", "quit":
		fmt.Println(gotext.Get("Goodbye."))
		os.Exit(0)
	case "s", "step":
		stepOnce(s)
	case "g", "generate", "run":
		generate(s, pause)
	case "r", "reset":
		if err := s.RequestReset(); err != nil {
			logMessage(s, gotext.Get("Reset failed: %v"), err)
		} else {
			logMessage(s, gotext.Get("Reset. All cells restored to full candidates."))
		}
	case "d", "dump":
		dumpMap(s)
	case "size":
		resize(s, fields[1:])
	default:
		logMessage(s, gotext.Get("Unknown command: %s"), fields[0])
	}
}

func main() {
	width := flag.Int("width", 48, "map width in cells")
	height := flag.Int("height", 24, "map height in cells")
	seed := flag.Int64("seed", 0, "random seed (0 = current time)")
	pause := flag.Duration("pause", 25*time.Millisecond, "pause between steps during a run")
	batch := flag.Bool("batch", false, "generate one map, dump it, and exit (no interactive loop)")
	flag.Parse()

	initGettext()
	renderer.InitColors()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	s, err := state.NewSession(*width, *height, terrain.DefaultCatalog(), *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wavemap: %v\n", err)
		os.Exit(1)
	}

	if *batch {
		if err := s.RequestGenerate(0, nil); err != nil {
			fmt.Fprintf(os.Stderr, "wavemap: %v\n", err)
			os.Exit(1)
		}
		path, err := devtools.DumpMapToFile(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "wavemap: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s %s\n", gotext.Get("Map dumped to"), path)
		return
	}

	logMessage(s, gotext.Get("Welcome. Step with [s] or generate the whole map with [g]."))

	for {
		renderNow(s)
		fmt.Printf("\n> ")
		processCommand(s, input.GetCommand(), *pause)
	}
}
