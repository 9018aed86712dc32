package path

import (
	"fmt"
	"strconv"

	"pathworks/pkg/geometry"
)

// Grammar, from the SVG 1.1 path specification:
//
// svg-path:
//     wsp* moveto-drawto-command-groups? wsp*
// moveto-drawto-command-group:
//     moveto wsp* drawto-commands?
// drawto-command:
//     closepath | lineto | horizontal-lineto | vertical-lineto | curveto
//     | smooth-curveto | quadratic-bezier-curveto
//     | smooth-quadratic-bezier-curveto | elliptical-arc
// coordinate-pair:
//     coordinate comma-wsp? coordinate
// number:
//     sign? integer-constant | sign? floating-point-constant
// comma-wsp:
//     (wsp+ comma? wsp*) | (comma wsp*)
//
// Lowercase command letters take coordinates relative to the current point;
// the parser resolves them to absolute coordinates as it goes, so the
// returned commands are always absolute.

type state struct {
	data     string
	index    int
	commands []Command
	current  geometry.Point
	start    geometry.Point
	relative bool
}

// Parse parses SVG path data into an absolute command sequence.
func Parse(d string) ([]Command, error) {
	s := &state{data: d}
	err := s.parse()
	return s.commands, err
}

func (s *state) parse() error {
	for {
		s.whitespace()

		c := s.peek()
		if c != 'M' && c != 'm' {
			break
		}

		if err := s.parseMoveTo(); err != nil {
			return err
		}
		s.whitespace()
		if err := s.parseDrawToCommands(); err != nil {
			return err
		}
	}

	s.whitespace()

	if s.index != len(s.data) {
		return fmt.Errorf("unparsed data: %q", s.data[s.index:])
	}

	return nil
}

func (s *state) emit(cmd Command, end geometry.Point) {
	s.commands = append(s.commands, cmd)
	s.current = end
}

// resolve maps a parsed coordinate pair to absolute coordinates.
func (s *state) resolve(x, y float64) geometry.Point {
	if s.relative {
		return geometry.Point{X: s.current.X + x, Y: s.current.Y + y}
	}
	return geometry.Point{X: x, Y: y}
}

// parseMoveTo parses one move to command, plus any trailing coordinate pairs
// as implicit line to commands.
func (s *state) parseMoveTo() error {
	command := s.next()
	if command != 'M' && command != 'm' {
		return fmt.Errorf("expected \"M\" or \"m\", got %q", string(command))
	}
	s.relative = command == 'm'
	s.whitespace()

	x, y, err := s.parseCoordinatePair()
	if err != nil {
		return err
	}
	p := s.resolve(x, y)
	s.emit(MoveTo{P: p}, p)
	s.start = p

	for {
		savedIndex := s.index
		s.commaWhitespace()
		x, y, err := s.parseCoordinatePair()
		if err != nil {
			// backtrack.
			s.index = savedIndex
			break
		}
		p := s.resolve(x, y)
		s.emit(LineTo{P: p}, p)
	}

	return nil
}

// parseDrawToCommands parses 0 or more draw to commands.
func (s *state) parseDrawToCommands() error {
	first := true
	for {
		if !first {
			s.whitespace()
		}
		first = false

		var err error

		switch s.peek() {
		case 'L', 'l':
			err = s.parseLineTo()
		case 'H', 'h':
			err = s.parseHLineTo()
		case 'V', 'v':
			err = s.parseVLineTo()
		case 'C', 'c':
			err = s.parseCubicTo()
		case 'S', 's':
			err = s.parseSmoothCubicTo()
		case 'Q', 'q':
			err = s.parseQuadTo()
		case 'T', 't':
			err = s.parseSmoothQuadTo()
		case 'A', 'a':
			err = s.parseArcTo()
		case 'Z', 'z':
			err = s.parseClosePath()
		default:
			return nil
		}

		if err != nil {
			return err
		}
	}
}

func (s *state) parseClosePath() error {
	c := s.next()
	if c != 'Z' && c != 'z' {
		return fmt.Errorf("expecting \"Z\" or \"z\", got %q", string(c))
	}
	s.emit(Close{}, s.start)
	return nil
}

// command consumes the command letter and sets the relative flag. upper and
// lower are the two accepted spellings.
func (s *state) command(upper, lower byte) error {
	c := s.next()
	if c != upper && c != lower {
		return fmt.Errorf("expecting %q or %q, got %q", string(upper), string(lower), string(c))
	}
	s.relative = c == lower
	s.whitespace()
	return nil
}

// argumentSequence repeats parse until it stops consuming input, requiring at
// least one successful pass. parse reports whether it consumed an argument.
func (s *state) argumentSequence(parse func() (bool, error)) error {
	first := true
	for {
		oldIndex := s.index
		if !first {
			s.commaWhitespace()
		}
		ok, err := parse()
		if !ok {
			s.index = oldIndex
			if first {
				return err
			}
			return nil
		}
		if err != nil {
			return err
		}
		first = false
	}
}

func (s *state) parseLineTo() error {
	if err := s.command('L', 'l'); err != nil {
		return err
	}
	return s.argumentSequence(func() (bool, error) {
		x, y, err := s.parseCoordinatePair()
		if err != nil {
			return false, err
		}
		p := s.resolve(x, y)
		s.emit(LineTo{P: p}, p)
		return true, nil
	})
}

func (s *state) parseHLineTo() error {
	if err := s.command('H', 'h'); err != nil {
		return err
	}
	return s.argumentSequence(func() (bool, error) {
		x, err := s.parseNumber()
		if err != nil {
			return false, err
		}
		if s.relative {
			x += s.current.X
		}
		s.emit(HLineTo{X: x}, geometry.Point{X: x, Y: s.current.Y})
		return true, nil
	})
}

func (s *state) parseVLineTo() error {
	if err := s.command('V', 'v'); err != nil {
		return err
	}
	return s.argumentSequence(func() (bool, error) {
		y, err := s.parseNumber()
		if err != nil {
			return false, err
		}
		if s.relative {
			y += s.current.Y
		}
		s.emit(VLineTo{Y: y}, geometry.Point{X: s.current.X, Y: y})
		return true, nil
	})
}

func (s *state) parseCubicTo() error {
	if err := s.command('C', 'c'); err != nil {
		return err
	}
	return s.argumentSequence(func() (bool, error) {
		x1, y1, err := s.parseCoordinatePair()
		if err != nil {
			return false, err
		}
		s.commaWhitespace()
		x2, y2, err := s.parseCoordinatePair()
		if err != nil {
			return true, err
		}
		s.commaWhitespace()
		x, y, err := s.parseCoordinatePair()
		if err != nil {
			return true, err
		}
		cmd := CubicTo{C1: s.resolve(x1, y1), C2: s.resolve(x2, y2), P: s.resolve(x, y)}
		s.emit(cmd, cmd.P)
		return true, nil
	})
}

func (s *state) parseSmoothCubicTo() error {
	if err := s.command('S', 's'); err != nil {
		return err
	}
	return s.argumentSequence(func() (bool, error) {
		x2, y2, err := s.parseCoordinatePair()
		if err != nil {
			return false, err
		}
		s.commaWhitespace()
		x, y, err := s.parseCoordinatePair()
		if err != nil {
			return true, err
		}
		cmd := SmoothCubicTo{C2: s.resolve(x2, y2), P: s.resolve(x, y)}
		s.emit(cmd, cmd.P)
		return true, nil
	})
}

func (s *state) parseQuadTo() error {
	if err := s.command('Q', 'q'); err != nil {
		return err
	}
	return s.argumentSequence(func() (bool, error) {
		x1, y1, err := s.parseCoordinatePair()
		if err != nil {
			return false, err
		}
		s.commaWhitespace()
		x, y, err := s.parseCoordinatePair()
		if err != nil {
			return true, err
		}
		cmd := QuadTo{C: s.resolve(x1, y1), P: s.resolve(x, y)}
		s.emit(cmd, cmd.P)
		return true, nil
	})
}

func (s *state) parseSmoothQuadTo() error {
	if err := s.command('T', 't'); err != nil {
		return err
	}
	return s.argumentSequence(func() (bool, error) {
		x, y, err := s.parseCoordinatePair()
		if err != nil {
			return false, err
		}
		cmd := SmoothQuadTo{P: s.resolve(x, y)}
		s.emit(cmd, cmd.P)
		return true, nil
	})
}

func (s *state) parseArcTo() error {
	if err := s.command('A', 'a'); err != nil {
		return err
	}
	// elliptical-arc-argument:
	//     nonnegative-number comma-wsp? nonnegative-number comma-wsp?
	//         number comma-wsp flag comma-wsp? flag comma-wsp? coordinate-pair
	return s.argumentSequence(func() (bool, error) {
		rx, err := s.parseNonNegativeNumber()
		if err != nil {
			return false, err
		}
		s.commaWhitespace()
		ry, err := s.parseNonNegativeNumber()
		if err != nil {
			return true, err
		}
		s.commaWhitespace()
		rotation, err := s.parseNumber()
		if err != nil {
			return true, err
		}
		if err := s.requiredCommaWhitespace(); err != nil {
			return true, err
		}
		largeArc, err := s.parseFlag()
		if err != nil {
			return true, err
		}
		s.commaWhitespace()
		sweep, err := s.parseFlag()
		if err != nil {
			return true, err
		}
		s.commaWhitespace()
		x, y, err := s.parseCoordinatePair()
		if err != nil {
			return true, err
		}
		cmd := ArcTo{
			RX: rx, RY: ry, Rotation: rotation,
			LargeArc: largeArc, Sweep: sweep,
			P: s.resolve(x, y),
		}
		s.emit(cmd, cmd.P)
		return true, nil
	})
}

func (s *state) parseFlag() (bool, error) {
	c := s.next()
	switch c {
	case '0':
		return false, nil
	case '1':
		return true, nil
	}
	return false, fmt.Errorf("expected flag \"0\" or \"1\", got %q", string(c))
}

// parseCoordinatePair parses "coordinate comma-wsp? coordinate"
func (s *state) parseCoordinatePair() (float64, float64, error) {
	x, err := s.parseNumber()
	if err != nil {
		return 0, 0, err
	}
	s.commaWhitespace()
	y, err := s.parseNumber()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func (s *state) parseNumber() (float64, error) {
	c := s.peek()
	if c == '+' || c == '-' {
		s.next()
		n, err := s.parseNonNegativeNumber()
		if c == '-' {
			n = -n
		}
		return n, err
	}
	return s.parseNonNegativeNumber()
}

func (s *state) parseNonNegativeNumber() (float64, error) {
	// nonnegative-number:
	//     (digit-sequence | fractional-constant) exponent?
	// fractional-constant:
	//     digit-sequence? "." digit-sequence
	//     | digit-sequence "."
	// exponent:
	//     ( "e" | "E" ) sign? digit-sequence

	number := s.digitSequence()
	if number == "" {
		// Possible fractional constant starting with a decimal point
		c := s.next()
		if c != '.' {
			return 0, fmt.Errorf("expected a number, got %q", string(c))
		}
		number = "." + s.digitSequence()
		if number == "." {
			return 0, fmt.Errorf("expected a number, got only a \".\"")
		}
	} else {
		// Check for possible fractional constant
		if s.peek() == '.' {
			s.next()
			number += "." + s.digitSequence()
		}
	}

	// Check for possible exponent
	c := s.peek()
	if c == 'E' || c == 'e' {
		s.next()
		sign := ""
		c = s.peek()
		if c == '+' || c == '-' {
			s.next()
			sign = string(c)
		}
		exponent := s.digitSequence()
		if exponent == "" {
			return 0, fmt.Errorf("expected an exponent, got %q", string(c))
		}
		number += "E" + sign + exponent
	}

	return strconv.ParseFloat(number, 64)
}

func (s *state) digitSequence() string {
	var sequence []byte
	for {
		c := s.peek()
		if '0' <= c && c <= '9' {
			sequence = append(sequence, c)
			s.next()
		} else {
			break
		}
	}
	return string(sequence)
}

// whitespace consumes "wsp*", and returns the number of bytes consumed
func (s *state) whitespace() int {
	count := 0
	for {
		switch s.peek() {
		case ' ', '\t', '\n', '\r':
			s.next()
			count++
		default:
			return count
		}
	}
}

// commaWhitespace consumes an optional "(wsp+ comma? wsp*) | (comma wsp*)",
// and returns true if something was consumed
func (s *state) commaWhitespace() bool {
	if s.peek() == ',' {
		s.next()
		s.whitespace()
		return true
	}

	consumed := s.whitespace()
	if consumed > 0 {
		if s.peek() == ',' {
			s.next()
		}
		s.whitespace()
		return true
	}

	return false
}

func (s *state) requiredCommaWhitespace() error {
	if !s.commaWhitespace() {
		return fmt.Errorf("expected comma or whitespace, got %q", string(s.peek()))
	}
	return nil
}

// peek returns the next byte without consuming it, or 0 at the end of input
func (s *state) peek() byte {
	if s.index < len(s.data) {
		return s.data[s.index]
	}
	return 0
}

// next consumes and returns the next byte, or 0 at the end of input
func (s *state) next() byte {
	if s.index < len(s.data) {
		i := s.index
		s.index++
		return s.data[i]
	}
	return 0
}
