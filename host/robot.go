package host

import (
	"fmt"
	"strings"

	"github.com/colorfulnotion/intcode/intcode"
	"github.com/colorfulnotion/intcode/intcode/program"
	"github.com/colorfulnotion/intcode/log"
	"github.com/colorfulnotion/intcode/vmerrors"
	"golang.org/x/exp/slices"
)

const (
	Black int64 = 0
	White int64 = 1
)

// Point is a hull panel; y grows upward.
type Point struct {
	X, Y int
}

type direction int

const (
	up direction = iota
	right
	down
	left
)

func (d direction) turn(code int64) direction {
	if code == 0 {
		return (d + 3) % 4
	}
	return (d + 1) % 4
}

func (p Point) move(d direction) Point {
	switch d {
	case up:
		p.Y++
	case down:
		p.Y--
	case left:
		p.X--
	case right:
		p.X++
	}
	return p
}

// Hull records which panels the robot painted and which are white now.
type Hull struct {
	white   map[Point]bool
	painted map[Point]bool
	Moves   int
}

func newHull() *Hull {
	return &Hull{white: make(map[Point]bool), painted: make(map[Point]bool)}
}

// PaintedCount is the number of panels painted at least once.
func (h *Hull) PaintedCount() int {
	return len(h.painted)
}

func (h *Hull) IsWhite(p Point) bool {
	return h.white[p]
}

// WhitePanels lists the white panels top row first, left to right.
func (h *Hull) WhitePanels() []Point {
	pts := make([]Point, 0, len(h.white))
	for p := range h.white {
		pts = append(pts, p)
	}
	slices.SortFunc(pts, func(a, b Point) int {
		if a.Y != b.Y {
			return b.Y - a.Y
		}
		return a.X - b.X
	})
	return pts
}

// Render draws the bounding box of the white panels, top row first, with
// '#' for white and '.' for black.
func (h *Hull) Render() string {
	pts := h.WhitePanels()
	if len(pts) == 0 {
		return ""
	}
	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[len(pts)-1].Y, pts[0].Y
	for _, p := range pts {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
	}
	var sb strings.Builder
	for y := maxY; y >= minY; y-- {
		for x := minX; x <= maxX; x++ {
			if h.white[Point{x, y}] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Paint runs the hull-painting robot. The robot starts at the origin facing
// up on a panel of colour start; each step it is given the colour under it
// and answers with a colour to paint and a turn (0 left, 1 right), then moves
// one panel forward.
func Paint(image program.Image, cfg intcode.Config, start int64) (*Hull, error) {
	if cfg.Identifier == "" {
		cfg.Identifier = "robot"
	}
	vm := intcode.NewVMWithConfig(image, cfg)
	hull := newHull()
	pos, dir := Point{}, up
	if start == White {
		hull.white[pos] = true
	}
	vm.PushInput(start)
	for {
		colour, halted, err := robotOutput(vm, true)
		if err != nil {
			return hull, err
		}
		if halted {
			break
		}
		turn, _, err := robotOutput(vm, false)
		if err != nil {
			return hull, err
		}

		hull.painted[pos] = true
		if colour == White {
			hull.white[pos] = true
		} else {
			delete(hull.white, pos)
		}
		dir = dir.turn(turn)
		pos = pos.move(dir)
		hull.Moves++

		under := Black
		if hull.white[pos] {
			under = White
		}
		vm.PushInput(under)
	}
	log.Debug(log.HostMonitoring, "robot halted", "painted", hull.PaintedCount(), "moves", hull.Moves, "steps", vm.Steps())
	return hull, nil
}

// robotOutput runs vm for one output. Halting is only legal before the
// first value of a pair.
func robotOutput(vm *intcode.VM, haltOK bool) (int64, bool, error) {
	state, err := vm.Run()
	if err != nil {
		return 0, false, err
	}
	switch state {
	case intcode.HAS_OUTPUT:
		v, err := vm.LastOutput()
		return v, false, err
	case intcode.HALTED:
		if haltOK {
			return 0, true, nil
		}
		return 0, false, fmt.Errorf("%w (halted between colour and turn, pc=%d)", vmerrors.ErrRobotProtocol, vm.PC())
	default:
		return 0, false, fmt.Errorf("%w (asked for input mid-pair, pc=%d)", vmerrors.ErrRobotProtocol, vm.PC())
	}
}
