package tokens

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"csstokens/css"
)

// Evaluator replaces calc() expressions with their computed values. It must
// run on resolved values, var() inside calc() is a syntax error here.
type Evaluator struct {
	log      *zap.Logger
	maxDepth int
}

// NewEvaluator creates evaluator, maxDepth <= 0 selects DefaultMaxDepth.
func NewEvaluator(log *zap.Logger, maxDepth int) *Evaluator {
	if log == nil {
		log = zap.NewNop()
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Evaluator{log: log.Named("calc"), maxDepth: maxDepth}
}

// Evaluate returns new map with every calc() span computed. Spans which
// cannot be computed are kept unchanged.
func (e *Evaluator) Evaluate(resolved *StringMap) *StringMap {
	out := NewStringMap()
	for name, value := range resolved.All() {
		out.Set(name, e.EvaluateValue(name, value))
	}
	return out
}

// EvaluateValue computes all calc() spans in a single value. Name is used for
// logging only.
func (e *Evaluator) EvaluateValue(name, value string) string {
	if css.IndexFunction(value, "calc", 0) < 0 {
		return value
	}

	var b strings.Builder
	pos := 0
	for {
		start := css.IndexFunction(value, "calc", pos)
		if start < 0 {
			b.WriteString(value[pos:])
			break
		}
		open := start + len("calc")
		end := css.MatchParen(value, open)
		if end < 0 {
			e.log.Warn("Unterminated calc() left as is", zap.String("name", name), zap.String("text", value[start:]))
			b.WriteString(value[pos:])
			break
		}
		b.WriteString(value[pos:start])

		span := value[start : end+1]
		if res, err := e.Compute(value[open+1 : end]); err != nil {
			e.log.Warn("Unable to evaluate calc(), left as is",
				zap.String("name", name), zap.String("expression", span), zap.Error(err))
			b.WriteString(span)
		} else {
			b.WriteString(res)
		}
		pos = end + 1
	}
	return b.String()
}

// Compute evaluates contents of a single calc() and returns formatted result.
func (e *Evaluator) Compute(expr string) (string, error) {
	toks, err := lex(expr)
	if err != nil {
		return "", err
	}
	p := &calcParser{toks: toks, maxDepth: e.maxDepth}
	q, err := p.expr(0)
	if err != nil {
		return "", err
	}
	if p.pos < len(p.toks) {
		return "", fmt.Errorf("unexpected %s", p.toks[p.pos])
	}
	if math.IsNaN(q.v) || math.IsInf(q.v, 0) {
		return "", errOverflow
	}
	if q.unit == "%" {
		q.v = math.Max(0, math.Min(100, q.v))
	}
	return css.FormatNumber(q.v) + q.unit, nil
}

var (
	errDivZero  = errors.New("division by zero")
	errOverflow = errors.New("result is not a finite number")
	errNesting  = errors.New("expression nesting is too deep")
	errEnd      = errors.New("unexpected end of expression")
)

// quantity is a number with optional unit. Units are carried along, not
// converted.
type quantity struct {
	v    float64
	unit string
}

type tokKind int

const (
	tokNumber tokKind = iota
	tokOp
	tokOpen
	tokClose
)

type calcTok struct {
	kind tokKind
	op   byte
	q    quantity
	unit string // unit trailing closing parenthesis
}

func (t calcTok) String() string {
	switch t.kind {
	case tokNumber:
		return fmt.Sprintf("number %q", css.FormatNumber(t.q.v)+t.q.unit)
	case tokOp:
		return fmt.Sprintf("operator %q", t.op)
	case tokOpen:
		return "'('"
	default:
		return "')'"
	}
}

// lex splits calc() contents into tokens. Signs are separate operator
// tokens, unary minus is handled by the parser.
func lex(s string) ([]calcTok, error) {
	var toks []calcTok
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case css.IsSpace(c):
			i++
		case c == '+' || c == '-' || c == '*' || c == '/':
			toks = append(toks, calcTok{kind: tokOp, op: c})
			i++
		case c == '(':
			toks = append(toks, calcTok{kind: tokOpen})
			i++
		case c == ')':
			i++
			n := unitLen(s[i:])
			toks = append(toks, calcTok{kind: tokClose, unit: s[i : i+n]})
			i += n
		case css.IsDigit(c) || c == '.':
			n := css.NumberPrefix(s[i:])
			if n == 0 {
				return nil, fmt.Errorf("bad number at %q", s[i:])
			}
			v, err := strconv.ParseFloat(s[i:i+n], 64)
			if err != nil {
				return nil, err
			}
			i += n
			u := unitLen(s[i:])
			toks = append(toks, calcTok{kind: tokNumber, q: quantity{v: v, unit: s[i : i+u]}})
			i += u
		case css.IsLetter(c):
			// nested calc( is just a group
			if j := i + len("calc"); j < len(s) && s[j] == '(' && css.ToLowerASCII(s[i:j]) == "calc" {
				toks = append(toks, calcTok{kind: tokOpen})
				i = j + 1
				continue
			}
			return nil, fmt.Errorf("unexpected %q", s[i:])
		default:
			return nil, fmt.Errorf("unexpected character %q", c)
		}
	}
	return toks, nil
}

// unitLen returns length of unit at the start of s: "%" or letters.
func unitLen(s string) int {
	if len(s) > 0 && s[0] == '%' {
		return 1
	}
	n := 0
	for n < len(s) && css.IsLetter(s[n]) {
		n++
	}
	return n
}

// calcParser is a recursive descent parser evaluating while parsing:
//
//	expr  := term (('+'|'-') term)*
//	term  := unary (('*'|'/') unary)*
//	unary := ('-'|'+') unary | primary
//	primary := NUMBER [UNIT] | '(' expr ')' [UNIT]
type calcParser struct {
	toks     []calcTok
	pos      int
	maxDepth int
}

func (p *calcParser) peekOp(ops string) (byte, bool) {
	if p.pos < len(p.toks) && p.toks[p.pos].kind == tokOp && strings.IndexByte(ops, p.toks[p.pos].op) >= 0 {
		return p.toks[p.pos].op, true
	}
	return 0, false
}

func (p *calcParser) expr(depth int) (quantity, error) {
	if depth > p.maxDepth {
		return quantity{}, errNesting
	}
	left, err := p.term(depth)
	if err != nil {
		return quantity{}, err
	}
	for {
		op, ok := p.peekOp("+-")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.term(depth)
		if err != nil {
			return quantity{}, err
		}
		unit := left.unit
		if unit == "" {
			unit = right.unit
		}
		if op == '+' {
			left = quantity{v: left.v + right.v, unit: unit}
		} else {
			left = quantity{v: left.v - right.v, unit: unit}
		}
	}
}

func (p *calcParser) term(depth int) (quantity, error) {
	left, err := p.unary(depth)
	if err != nil {
		return quantity{}, err
	}
	for {
		op, ok := p.peekOp("*/")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.unary(depth)
		if err != nil {
			return quantity{}, err
		}
		if op == '*' {
			unit := left.unit
			if unit == "" {
				unit = right.unit
			}
			left = quantity{v: left.v * right.v, unit: unit}
			continue
		}
		if right.v == 0 {
			return quantity{}, errDivZero
		}
		unit := left.unit
		if right.unit != "" {
			unit = ""
		}
		left = quantity{v: left.v / right.v, unit: unit}
	}
}

func (p *calcParser) unary(depth int) (quantity, error) {
	if depth > p.maxDepth {
		return quantity{}, errNesting
	}
	if op, ok := p.peekOp("+-"); ok {
		p.pos++
		q, err := p.unary(depth + 1)
		if err != nil {
			return quantity{}, err
		}
		if op == '-' {
			q.v = -q.v
		}
		return q, nil
	}
	return p.primary(depth)
}

func (p *calcParser) primary(depth int) (quantity, error) {
	if p.pos >= len(p.toks) {
		return quantity{}, errEnd
	}
	t := p.toks[p.pos]
	switch t.kind {
	case tokNumber:
		p.pos++
		return t.q, nil
	case tokOpen:
		p.pos++
		q, err := p.expr(depth + 1)
		if err != nil {
			return quantity{}, err
		}
		if p.pos >= len(p.toks) || p.toks[p.pos].kind != tokClose {
			return quantity{}, errors.New("missing ')'")
		}
		if u := p.toks[p.pos].unit; u != "" {
			q.unit = u
		}
		p.pos++
		return q, nil
	}
	return quantity{}, fmt.Errorf("unexpected %s", t)
}
