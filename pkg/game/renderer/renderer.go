// Package renderer draws the generation session in the terminal. It only
// reads session state; commands flow back through the host loop, never from
// here.
package renderer

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"wavemap/pkg/engine/terminal"
	"wavemap/pkg/engine/world"
	"wavemap/pkg/game/state"
	"wavemap/pkg/game/terrain"
)

// Icon constants for the map view
const (
	IconDeep          = "≈"
	IconWater         = "~"
	IconBeach         = "."
	IconGrass         = "\""
	IconTrees         = "♣"
	IconMountain      = "▲"
	IconSnow          = "*"
	IconUnknown       = "?"
	IconContradiction = "!"
)

// terrainIcons maps catalog state names to their map glyphs.
var terrainIcons = map[string]string{
	terrain.Deep:     IconDeep,
	terrain.Water:    IconWater,
	terrain.Beach:    IconBeach,
	terrain.Grass:    IconGrass,
	terrain.Trees:    IconTrees,
	terrain.Mountain: IconMountain,
	terrain.Snow:     IconSnow,
}

var (
	colorTitle  color.Style
	colorStatus color.Style
	colorSubtle color.Style
	colorDenied color.Style
	colorAction color.Style

	terrainColors map[string]color.Style
)

// InitColors initializes the color styles
func InitColors() {
	colorTitle = color.Style{color.FgCyan, color.OpBold}
	colorStatus = color.Style{color.FgGray}
	colorSubtle = color.Style{color.FgGray, color.OpBold}
	colorDenied = color.Style{color.FgRed, color.OpBold}
	colorAction = color.Style{color.FgMagenta}

	terrainColors = map[string]color.Style{
		terrain.Deep:     {color.FgBlue, color.OpBold},
		terrain.Water:    {color.FgBlue},
		terrain.Beach:    {color.FgYellow},
		terrain.Grass:    {color.FgGreen},
		terrain.Trees:    {color.FgGreen, color.OpBold},
		terrain.Mountain: {color.FgWhite},
		terrain.Snow:     {color.FgWhite, color.OpBold},
	}
}

// Clear clears the terminal screen
func Clear() {
	c := exec.Command("clear")
	c.Stdout = os.Stdout
	c.Run()
}

// RenderTile returns the string representation of one grid position: the
// colored terrain glyph once collapsed, otherwise the cell's entropy as a
// faint digit so the narrowing is visible while a run is in flight.
func RenderTile(catalog *world.Catalog, t world.Tile) string {
	switch tile := t.(type) {
	case *world.CollapsedCell:
		name := catalog.Name(tile.State)
		icon, ok := terrainIcons[name]
		if !ok {
			return IconUnknown
		}
		if style, ok := terrainColors[name]; ok {
			return style.Sprint(icon)
		}
		return icon
	case *world.Cell:
		entropy := tile.Entropy()
		switch {
		case entropy == 0:
			return colorDenied.Sprint(IconContradiction)
		case entropy >= catalog.Size():
			return colorStatus.Sprint("·")
		case entropy > 9:
			return colorSubtle.Sprint("+")
		default:
			return colorSubtle.Sprintf("%d", entropy)
		}
	default:
		return " "
	}
}

// RenderFrame renders a complete session frame: title, status line, map,
// legend, and the messages pane.
func RenderFrame(s *state.Session) {
	colorTitle.Printf("%s %d×%d\n", gotext.Get("Terrain map"), s.Width(), s.Height())
	colorStatus.Printf("seed %d  phase %s\n\n", s.Seed, s.Phase())

	printMap(s)
	printLegend(s)
	printStatusBar(s)
	printMessagesPane(s)
}

// printMap renders the grid, centered on the terminal width.
func printMap(s *state.Session) {
	termWidth := terminal.GetWidth()
	indentLen := (termWidth - s.Width()) / 2
	if indentLen < 0 {
		indentLen = 0
	}
	indent := strings.Repeat(" ", indentLen)

	for y := 0; y < s.Height(); y++ {
		fmt.Print(indent)
		for x := 0; x < s.Width(); x++ {
			fmt.Print(RenderTile(s.Catalog, s.Get(x, y)))
		}
		fmt.Print("\n")
	}
	fmt.Println()
}

// printLegend prints one line mapping glyphs to terrain names.
func printLegend(s *state.Session) {
	parts := make([]string, 0, s.Catalog.Size())
	for _, st := range s.Catalog.States() {
		name := s.Catalog.Name(st)
		icon := terrainIcons[name]
		if icon == "" {
			icon = IconUnknown
		}
		if style, ok := terrainColors[name]; ok {
			icon = style.Sprint(icon)
		}
		parts = append(parts, fmt.Sprintf("%s %s", icon, gotext.Get(name)))
	}
	fmt.Println(colorStatus.Sprint(gotext.Get("Legend: ")) + strings.Join(parts, colorStatus.Sprint("  ")))
}

// printStatusBar renders progress counters and the available actions.
func printStatusBar(s *state.Session) {
	total := s.Width() * s.Height()
	fmt.Println()
	colorStatus.Printf("%s %d  %s %d/%d  %s %d\n",
		gotext.Get("steps:"), s.Steps(),
		gotext.Get("collapsed:"), s.CollapsedCount(), total,
		gotext.Get("entropy:"), s.TotalEntropy())

	actions := []string{
		colorAction.Sprint("[s] ") + gotext.Get("step"),
		colorAction.Sprint("[g] ") + gotext.Get("generate"),
		colorAction.Sprint("[r] ") + gotext.Get("reset"),
		colorAction.Sprint("[d] ") + gotext.Get("dump map"),
		colorAction.Sprint("size W H ") + gotext.Get("resize"),
		colorAction.Sprint("[q] ") + gotext.Get("quit"),
	}
	fmt.Println(strings.Join(actions, colorStatus.Sprint("  ")))
}

// printMessagesPane renders the messages log pane
func printMessagesPane(s *state.Session) {
	width := terminal.GetWidth()

	label := " " + gotext.Get("Messages") + " "
	labelLen := len([]rune(label))
	sideLen := (width - labelLen) / 2
	if sideLen < 1 {
		sideLen = 1
	}

	rightLen := width - sideLen - labelLen
	if rightLen < 1 {
		rightLen = 1
	}

	leftDashes := strings.Repeat("─", sideLen)
	rightDashes := strings.Repeat("─", rightLen)

	fmt.Println()
	fmt.Println(colorSubtle.Sprint(leftDashes + label + rightDashes))

	if len(s.Messages) == 0 {
		fmt.Println(colorSubtle.Sprint("  " + gotext.Get("(no messages)")))
	} else {
		for _, msg := range s.Messages {
			fmt.Printf("  %s\n", msg)
		}
	}

	fmt.Println(colorSubtle.Sprint(strings.Repeat("─", width)))
}
