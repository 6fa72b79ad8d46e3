package decl

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/gogpu/gg"
)

// ParsePath parses SVG-like path data into a gg.Path. Supported commands are M, L, H,
// V, Q, C and Z; lower-case forms are relative to the current point. A command letter
// may be followed by several coordinate groups, as in SVG.
func ParsePath(data string) (*gg.Path, error) {
	tokens := tokenizePath(data)
	path := gg.NewPath()

	var cmd byte
	var cur, start gg.Point
	i := 0

	nums := func(n int) ([]float64, error) {
		if i+n > len(tokens) {
			return nil, fmt.Errorf("path command %c: want %d numbers", cmd, n)
		}
		out := make([]float64, n)
		for j := range out {
			v, err := strconv.ParseFloat(tokens[i+j], 64)
			if err != nil {
				return nil, fmt.Errorf("path command %c: %w", cmd, err)
			}
			out[j] = v
		}
		i += n
		return out, nil
	}

	for i < len(tokens) {
		if t := tokens[i]; len(t) == 1 && unicode.IsLetter(rune(t[0])) {
			cmd = t[0]
			i++
		} else if cmd == 0 {
			return nil, fmt.Errorf("expected a path command, got %q", t)
		}

		rel := cmd >= 'a' && cmd <= 'z'
		abs := func(x, y float64) gg.Point {
			if rel {
				return cur.Add(gg.Pt(x, y))
			}
			return gg.Pt(x, y)
		}

		switch cmd {
		case 'M', 'm':
			v, err := nums(2)
			if err != nil {
				return nil, err
			}
			cur = abs(v[0], v[1])
			start = cur
			path.MoveTo(cur.X, cur.Y)
			// Further pairs after a move are implicit line-tos.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'L', 'l':
			v, err := nums(2)
			if err != nil {
				return nil, err
			}
			cur = abs(v[0], v[1])
			path.LineTo(cur.X, cur.Y)
		case 'H', 'h':
			v, err := nums(1)
			if err != nil {
				return nil, err
			}
			if rel {
				cur.X += v[0]
			} else {
				cur.X = v[0]
			}
			path.LineTo(cur.X, cur.Y)
		case 'V', 'v':
			v, err := nums(1)
			if err != nil {
				return nil, err
			}
			if rel {
				cur.Y += v[0]
			} else {
				cur.Y = v[0]
			}
			path.LineTo(cur.X, cur.Y)
		case 'Q', 'q':
			v, err := nums(4)
			if err != nil {
				return nil, err
			}
			c := abs(v[0], v[1])
			cur = abs(v[2], v[3])
			path.QuadraticTo(c.X, c.Y, cur.X, cur.Y)
		case 'C', 'c':
			v, err := nums(6)
			if err != nil {
				return nil, err
			}
			c1, c2 := abs(v[0], v[1]), abs(v[2], v[3])
			cur = abs(v[4], v[5])
			path.CubicTo(c1.X, c1.Y, c2.X, c2.Y, cur.X, cur.Y)
		case 'Z', 'z':
			path.Close()
			cur = start
			cmd = 0
		default:
			return nil, fmt.Errorf("unsupported path command %c", cmd)
		}
	}

	if len(path.Elements()) == 0 {
		return nil, fmt.Errorf("empty path")
	}
	return path, nil
}

// tokenizePath splits path data into command letters and numbers.
func tokenizePath(data string) []string {
	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}

	for i, r := range data {
		switch {
		case r == ',' || unicode.IsSpace(r):
			flush()
		case r == '-' || r == '+':
			// A sign starts a new number unless it belongs to an exponent.
			if i > 0 && (data[i-1] == 'e' || data[i-1] == 'E') {
				b.WriteRune(r)
				continue
			}
			flush()
			b.WriteRune(r)
		case unicode.IsLetter(r) && r != 'e' && r != 'E':
			flush()
			tokens = append(tokens, string(r))
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return tokens
}
