package sheet

import (
	"bytes"
	"fmt"
	"strconv"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokName
	tokOperator
	tokOther // strings, arrays and dictionary delimiters
)

type token struct {
	kind tokenKind
	num  float64
	text string
}

// lexer splits a PDF content stream into tokens.
type lexer struct {
	data []byte
	pos  int
}

func isSpace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch {
		case isSpace(c):
			l.pos++
		case c == '%':
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *lexer) skipRegular() {
	for l.pos < len(l.data) && !isSpace(l.data[l.pos]) && !isDelim(l.data[l.pos]) {
		l.pos++
	}
}

// skipString skips a literal string with balanced parentheses.
func (l *lexer) skipString() {
	depth := 0
	for l.pos < len(l.data) {
		switch l.data[l.pos] {
		case '\\':
			l.pos++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				l.pos++
				return
			}
		}
		l.pos++
	}
}

func (l *lexer) next() (token, bool) {
	l.skipSpace()
	if l.pos >= len(l.data) {
		return token{}, false
	}

	c := l.data[l.pos]
	switch c {
	case '(':
		l.skipString()
		return token{kind: tokOther}, true
	case '<':
		if l.pos+1 < len(l.data) && l.data[l.pos+1] == '<' {
			l.pos += 2
			return token{kind: tokOther, text: "<<"}, true
		}
		end := bytes.IndexByte(l.data[l.pos:], '>')
		if end < 0 {
			l.pos = len(l.data)
		} else {
			l.pos += end + 1
		}
		return token{kind: tokOther}, true
	case '>':
		l.pos++
		if l.pos < len(l.data) && l.data[l.pos] == '>' {
			l.pos++
		}
		return token{kind: tokOther, text: ">>"}, true
	case '[', ']', '{', '}', ')':
		l.pos++
		return token{kind: tokOther, text: string(l.data[l.pos-1 : l.pos])}, true
	case '/':
		l.pos++
		start := l.pos
		l.skipRegular()
		return token{kind: tokName, text: string(l.data[start:l.pos])}, true
	}

	start := l.pos
	l.skipRegular()
	word := string(l.data[start:l.pos])
	if c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9') {
		if v, err := strconv.ParseFloat(word, 64); err == nil {
			return token{kind: tokNumber, num: v}, true
		}
	}
	return token{kind: tokOperator, text: word}, true
}

// skipInlineImage moves past the data of an inline image, up to and
// including the EI operator.
func (l *lexer) skipInlineImage() {
	for {
		tok, ok := l.next()
		if !ok {
			return
		}
		if tok.kind == tokOperator && tok.text == "ID" {
			break
		}
	}
	for i := l.pos + 1; i+2 <= len(l.data); i++ {
		if l.data[i] == 'E' && l.data[i+1] == 'I' && isSpace(l.data[i-1]) &&
			(i+2 == len(l.data) || isSpace(l.data[i+2])) {
			l.pos = i + 2
			return
		}
	}
	l.pos = len(l.data)
}

type gstate struct {
	ctm    matrix.Matrix
	fill   float64
	stroke float64
	width  float64
	cap    graphics.LineCapStyle
	join   graphics.LineJoinStyle
}

// operands is the number of numeric operands each supported operator reads.
var operands = map[string]int{
	"cm": 6, "w": 1, "J": 1, "j": 1,
	"g": 1, "G": 1, "rg": 3, "RG": 3, "k": 4, "K": 4,
	"m": 2, "l": 2, "c": 6, "v": 4, "y": 4, "re": 4,
}

// parseContent interprets the path construction, path painting, graphics
// state and colour operators of a content stream. Text objects, images,
// shadings, XObjects and clipping are skipped. Colours are reduced to gray.
func parseContent(data []byte) ([]Item, error) {
	var (
		items     []Item
		stack     []gstate
		args      []float64
		cur       *path.Data
		start, pt vec.Vec2
		inText    bool
	)
	gs := gstate{ctm: matrix.Identity, width: 1}

	paint := func(paints ...Paint) {
		if cur != nil && len(cur.Coords) > 0 {
			for _, p := range paints {
				s := Shape{Path: cur, Paint: p, Gray: gs.fill, Width: gs.width, Cap: gs.cap, Join: gs.join}
				if p == Stroke {
					s.Gray = gs.stroke
				}
				items = append(items, Item{Shape: s, CTM: gs.ctm})
			}
		}
		cur = nil
	}
	moveTo := func(v vec.Vec2) {
		if cur == nil {
			cur = &path.Data{}
		}
		cur = cur.MoveTo(v)
		start, pt = v, v
	}

	l := lexer{data: data}
	for {
		tok, ok := l.next()
		if !ok {
			break
		}
		switch tok.kind {
		case tokNumber:
			args = append(args, tok.num)
			continue
		case tokName, tokOther:
			continue
		}

		op := tok.text
		if inText && op != "ET" {
			args = args[:0]
			continue
		}
		a := args
		if n, ok := operands[op]; ok {
			if len(args) < n {
				return nil, fmt.Errorf("operator %s needs %d operands, got %d", op, n, len(args))
			}
			a = args[len(args)-n:]
		}

		switch op {
		case "q":
			stack = append(stack, gs)
		case "Q":
			if n := len(stack); n > 0 {
				gs, stack = stack[n-1], stack[:n-1]
			}
		case "cm":
			gs.ctm = Concat(matrix.Matrix{a[0], a[1], a[2], a[3], a[4], a[5]}, gs.ctm)
		case "w":
			gs.width = a[0]
		case "J":
			gs.cap = graphics.LineCapStyle(int(a[0]))
		case "j":
			gs.join = graphics.LineJoinStyle(int(a[0]))

		case "g":
			gs.fill = clampGray(a[0])
		case "G":
			gs.stroke = clampGray(a[0])
		case "rg":
			gs.fill = rgbGray(a[0], a[1], a[2])
		case "RG":
			gs.stroke = rgbGray(a[0], a[1], a[2])
		case "k":
			gs.fill = cmykGray(a[0], a[1], a[2], a[3])
		case "K":
			gs.stroke = cmykGray(a[0], a[1], a[2], a[3])
		case "cs":
			gs.fill = Black
		case "CS":
			gs.stroke = Black
		case "sc", "scn":
			if g, ok := componentGray(a); ok {
				gs.fill = g
			}
		case "SC", "SCN":
			if g, ok := componentGray(a); ok {
				gs.stroke = g
			}

		case "m":
			moveTo(vec.Vec2{X: a[0], Y: a[1]})
		case "l":
			v := vec.Vec2{X: a[0], Y: a[1]}
			if cur == nil {
				moveTo(v)
				break
			}
			cur = cur.LineTo(v)
			pt = v
		case "c", "v", "y":
			var c1, c2, end vec.Vec2
			switch op {
			case "c":
				c1, c2, end = vec.Vec2{X: a[0], Y: a[1]}, vec.Vec2{X: a[2], Y: a[3]}, vec.Vec2{X: a[4], Y: a[5]}
			case "v":
				c1, c2, end = pt, vec.Vec2{X: a[0], Y: a[1]}, vec.Vec2{X: a[2], Y: a[3]}
			case "y":
				c1, c2, end = vec.Vec2{X: a[0], Y: a[1]}, vec.Vec2{X: a[2], Y: a[3]}, vec.Vec2{X: a[2], Y: a[3]}
			}
			if cur == nil {
				moveTo(c1)
			}
			cur = cur.CubeTo(c1, c2, end)
			pt = end
		case "h":
			if cur != nil {
				cur = cur.Close()
				pt = start
			}
		case "re":
			x, y, w, h := a[0], a[1], a[2], a[3]
			if cur == nil {
				cur = Rect(x, y, w, h)
			} else {
				cur = AppendPolygon(cur, []vec.Vec2{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}})
			}
			start, pt = vec.Vec2{X: x, Y: y}, vec.Vec2{X: x, Y: y}

		case "f", "F":
			paint(Fill)
		case "f*":
			paint(FillEvenOdd)
		case "S":
			paint(Stroke)
		case "s":
			if cur != nil {
				cur = cur.Close()
			}
			paint(Stroke)
		case "B", "b":
			if op == "b" && cur != nil {
				cur = cur.Close()
			}
			paint(Fill, Stroke)
		case "B*", "b*":
			if op == "b*" && cur != nil {
				cur = cur.Close()
			}
			paint(FillEvenOdd, Stroke)
		case "n":
			cur = nil

		case "BT":
			inText = true
		case "ET":
			inText = false
		case "BI":
			l.skipInlineImage()
		}
		args = args[:0]
	}
	return items, nil
}

func clampGray(g float64) float64 {
	return min(max(g, 0), 1)
}

func rgbGray(r, g, b float64) float64 {
	return clampGray(0.3*r + 0.59*g + 0.11*b)
}

func cmykGray(c, m, y, k float64) float64 {
	return clampGray(1 - min(1, 0.3*c+0.59*m+0.11*y+k))
}

// componentGray converts the operands of sc/scn to gray, based on their
// count. Pattern colours have no numeric operands and are ignored.
func componentGray(a []float64) (float64, bool) {
	switch len(a) {
	case 1:
		return clampGray(a[0]), true
	case 3:
		return rgbGray(a[0], a[1], a[2]), true
	case 4:
		return cmykGray(a[0], a[1], a[2], a[3]), true
	}
	return 0, false
}
