// Package lsystem implements the Lindenmayer-system node: string rewriting
// followed by turtle-graphics interpretation of the final string.
package lsystem

import (
	"math"
	"strings"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"go.trai.ch/zerr"
)

// maxExpansion caps rewrite growth so a hostile rule set cannot exhaust
// memory before turtle interpretation even starts.
const maxExpansion = 1 << 20

// ParseRules parses a rule string of the form "F=FF+[+F-F];X=F[X]" into a
// production map. Whitespace around entries is ignored; an entry without
// '=' or with a multi-rune left side is a parse error.
func ParseRules(src string) (map[rune]string, error) {
	rules := make(map[rune]string)
	for _, entry := range strings.Split(src, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		eq := strings.IndexByte(entry, '=')
		if eq < 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrParse, "missing '='"), "rule", entry)
		}
		lhs := []rune(strings.TrimSpace(entry[:eq]))
		if len(lhs) != 1 {
			return nil, zerr.With(zerr.Wrap(domain.ErrParse, "left side must be one character"), "rule", entry)
		}
		rules[lhs[0]] = strings.TrimSpace(entry[eq+1:])
	}
	return rules, nil
}

// Rewrite applies the rule set to the axiom the given number of times.
// Characters with no production copy through unchanged.
func Rewrite(axiom string, rules map[rune]string, iterations int) (string, error) {
	cur := axiom
	for i := 0; i < iterations; i++ {
		var b strings.Builder
		b.Grow(len(cur) * 2)
		for _, r := range cur {
			if repl, ok := rules[r]; ok {
				b.WriteString(repl)
			} else {
				b.WriteRune(r)
			}
			if b.Len() > maxExpansion {
				return "", zerr.With(zerr.Wrap(domain.ErrParameter, "expansion too large"), "field", "iterations")
			}
		}
		cur = b.String()
	}
	return cur, nil
}

type turtleState struct {
	x, y    float64
	heading float64
}

// turtle interprets the rewritten string: uppercase letters draw forward,
// lowercase letters move without drawing, '+'/'-' turn by ±angle, '['/']'
// push and pop state. Anything else is a no-op. A pop with an empty stack
// is a node-local error, not a crash.
func turtle(cmds string, step, angle, startX, startY, startAngle float64) (domain.PathSet, error) {
	st := turtleState{x: startX, y: startY, heading: startAngle}
	var stack []turtleState
	var out domain.PathSet
	var cur domain.Path

	flush := func() {
		if !cur.Degenerate() {
			out = append(out, cur)
		}
		cur = nil
	}

	for _, r := range cmds {
		switch {
		case r >= 'A' && r <= 'Z':
			rad := st.heading * math.Pi / 180
			nx := st.x + step*math.Cos(rad)
			ny := st.y + step*math.Sin(rad)
			if len(cur) == 0 {
				cur = append(cur, domain.Point{X: st.x, Y: st.y})
			}
			cur = append(cur, domain.Point{X: nx, Y: ny})
			st.x, st.y = nx, ny
		case r >= 'a' && r <= 'z':
			flush()
			rad := st.heading * math.Pi / 180
			st.x += step * math.Cos(rad)
			st.y += step * math.Sin(rad)
		case r == '+':
			st.heading += angle
		case r == '-':
			st.heading -= angle
		case r == '[':
			stack = append(stack, st)
		case r == ']':
			if len(stack) == 0 {
				return nil, zerr.Wrap(domain.ErrParse, "unbalanced bracket: pop with empty stack")
			}
			flush()
			st = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		}
	}
	flush()
	return out, nil
}

// Eval evaluates the l-system node. The step length shrinks by
// scalePerIter for every rewrite level.
func Eval(p domain.Params) (domain.PathSet, error) {
	axiom := p.String("axiom", "F")
	if axiom == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "empty"), "field", "axiom")
	}
	iterations := p.Int("iterations", 3)
	if iterations < 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "negative"), "field", "iterations")
	}
	rules, err := ParseRules(p.String("rules", ""))
	if err != nil {
		return nil, err
	}
	angle := p.Float("angle", 90)
	step := p.Float("step", 10)
	startX := p.Float("startX", 0)
	startY := p.Float("startY", 0)
	startAngle := p.Float("startAngle", -90)
	scalePerIter := p.Float("scalePerIter", 1)

	cmds, err := Rewrite(axiom, rules, iterations)
	if err != nil {
		return nil, err
	}
	effStep := step * math.Pow(scalePerIter, float64(iterations))
	return turtle(cmds, effStep, angle, startX, startY, startAngle)
}
