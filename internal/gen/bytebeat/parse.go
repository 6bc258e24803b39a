// Package bytebeat implements the bytebeat node: a small integer
// expression language over a step counter t, evaluated per step and
// mapped to geometry.
package bytebeat

import (
	"strconv"
	"strings"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"go.trai.ch/zerr"
)

type tokKind int

const (
	tokEOF tokKind = iota
	tokNum
	tokT
	tokPlus
	tokMinus
	tokMul
	tokDiv
	tokMod
	tokAnd
	tokOr
	tokXor
	tokShl
	tokShr
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	val  int64
	pos  int
}

func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c >= '0' && c <= '9':
			j := i + 1
			base := 10
			if c == '0' && j < len(src) && (src[j] == 'x' || src[j] == 'X') {
				base = 16
				j++
				for j < len(src) && isHex(src[j]) {
					j++
				}
			} else {
				for j < len(src) && src[j] >= '0' && src[j] <= '9' {
					j++
				}
			}
			text := src[i:j]
			if base == 16 {
				text = text[2:]
			}
			v, err := strconv.ParseInt(text, base, 64)
			if err != nil {
				return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrParse, "bad integer literal"), "literal", src[i:j]), "pos", i)
			}
			toks = append(toks, token{kind: tokNum, val: v, pos: i})
			i = j
		case c == 't' || c == 'T':
			toks = append(toks, token{kind: tokT, pos: i})
			i++
		case c == '+':
			toks = append(toks, token{kind: tokPlus, pos: i})
			i++
		case c == '-':
			toks = append(toks, token{kind: tokMinus, pos: i})
			i++
		case c == '*':
			toks = append(toks, token{kind: tokMul, pos: i})
			i++
		case c == '/':
			toks = append(toks, token{kind: tokDiv, pos: i})
			i++
		case c == '%':
			toks = append(toks, token{kind: tokMod, pos: i})
			i++
		case c == '&':
			toks = append(toks, token{kind: tokAnd, pos: i})
			i++
		case c == '|':
			toks = append(toks, token{kind: tokOr, pos: i})
			i++
		case c == '^':
			toks = append(toks, token{kind: tokXor, pos: i})
			i++
		case c == '<':
			if i+1 >= len(src) || src[i+1] != '<' {
				return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrParse, "unexpected character"), "char", string(c)), "pos", i)
			}
			toks = append(toks, token{kind: tokShl, pos: i})
			i += 2
		case c == '>':
			if i+1 >= len(src) || src[i+1] != '>' {
				return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrParse, "unexpected character"), "char", string(c)), "pos", i)
			}
			toks = append(toks, token{kind: tokShr, pos: i})
			i += 2
		case c == '(':
			toks = append(toks, token{kind: tokLParen, pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, pos: i})
			i++
		default:
			return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrParse, "unexpected character"), "char", string(c)), "pos", i)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

type node interface {
	eval(t int64) int64
}

type lit int64

func (l lit) eval(int64) int64 { return int64(l) }

type varT struct{}

func (varT) eval(t int64) int64 { return t }

type unary struct {
	op   tokKind
	expr node
}

func (u unary) eval(t int64) int64 {
	if u.op == tokMinus {
		return -u.expr.eval(t)
	}
	return u.expr.eval(t)
}

type binary struct {
	op          tokKind
	left, right node
}

func (b binary) eval(t int64) int64 {
	l := b.left.eval(t)
	r := b.right.eval(t)
	switch b.op {
	case tokPlus:
		return l + r
	case tokMinus:
		return l - r
	case tokMul:
		return l * r
	case tokDiv:
		if r == 0 {
			return 0
		}
		return l / r
	case tokMod:
		if r == 0 {
			return 0
		}
		return l % r
	case tokAnd:
		return l & r
	case tokOr:
		return l | r
	case tokXor:
		return l ^ r
	case tokShl:
		return l << clampShift(r)
	case tokShr:
		return l >> clampShift(r)
	}
	return 0
}

// clampShift bounds shift counts so user formulas cannot trip the
// undefined-for-negative shift panic.
func clampShift(n int64) uint {
	if n < 0 {
		return 0
	}
	if n > 63 {
		return 63
	}
	return uint(n)
}

// Expr is a parsed bytebeat expression, reusable across steps.
type Expr struct {
	root node
}

// C-style precedence, loosest to tightest: | ^ & shifts additive
// multiplicative. A Pratt parser drives off this table.
var precedence = map[tokKind]int{
	tokOr:    10,
	tokXor:   20,
	tokAnd:   30,
	tokShl:   40,
	tokShr:   40,
	tokPlus:  50,
	tokMinus: 50,
	tokMul:   60,
	tokDiv:   60,
	tokMod:   60,
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) parse(minPrec int) (node, error) {
	tok := p.next()
	var left node
	switch tok.kind {
	case tokNum:
		left = lit(tok.val)
	case tokT:
		left = varT{}
	case tokMinus:
		expr, err := p.parse(70)
		if err != nil {
			return nil, err
		}
		left = unary{op: tokMinus, expr: expr}
	case tokLParen:
		expr, err := p.parse(0)
		if err != nil {
			return nil, err
		}
		if p.next().kind != tokRParen {
			return nil, zerr.With(zerr.Wrap(domain.ErrParse, "missing closing paren"), "pos", tok.pos)
		}
		left = expr
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrParse, "unexpected token"), "pos", tok.pos)
	}

	for {
		prec, ok := precedence[p.peek().kind]
		if !ok || prec <= minPrec {
			return left, nil
		}
		op := p.next()
		// Left-associative: bind the right side one level tighter.
		right, err := p.parse(prec)
		if err != nil {
			return nil, err
		}
		left = binary{op: op.kind, left: left, right: right}
	}
}

// Parse compiles a formula. Malformed input is a node-local parse error,
// never a panic.
func Parse(src string) (*Expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, zerr.Wrap(domain.ErrParse, "empty formula")
	}
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	root, err := p.parse(0)
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, zerr.With(zerr.Wrap(domain.ErrParse, "trailing input"), "pos", p.peek().pos)
	}
	return &Expr{root: root}, nil
}

// Eval evaluates the expression at step t using signed 64-bit arithmetic.
// Division and modulo by zero yield 0.
func (e *Expr) Eval(t int64) int64 {
	return e.root.eval(t)
}

// Fold wraps a raw expression value into the drawable byte range 0..255.
func Fold(v int64) int64 {
	return v & 0xFF
}
