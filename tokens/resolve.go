package tokens

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"go.uber.org/zap"

	"csstokens/css"
)

const (
	// DefaultMaxDepth limits nesting of references and expressions.
	DefaultMaxDepth = 64
	// maxExpansions limits total number of var() substitutions performed
	// while resolving a single entry.
	maxExpansions = 1 << 14
)

var (
	errMissing = errors.New("reference to undefined custom property")
	errCycle   = errors.New("cyclic reference")
	errDepth   = errors.New("reference nesting is too deep")
	errBudget  = errors.New("too many substitutions")
	errBadName = errors.New("invalid reference")
)

// Resolver expands var() references into literal text.
type Resolver struct {
	log      *zap.Logger
	maxDepth int
}

// NewResolver creates resolver, maxDepth <= 0 selects DefaultMaxDepth.
func NewResolver(log *zap.Logger, maxDepth int) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Resolver{log: log.Named("resolve"), maxDepth: maxDepth}
}

// Resolve returns new map where every var() reference is replaced with value
// of referenced property (or fallback). Entries which cannot be fully
// resolved - missing references, cycles without fallback - are left out.
func (r *Resolver) Resolve(raw *StringMap) *StringMap {
	out := NewStringMap()
	for name, value := range raw.All() {
		rs := &resolution{
			Resolver: r,
			raw:      raw,
			active:   map[string]struct{}{name: {}},
		}
		res, _, err := rs.expand(name, value, 0)
		if err != nil {
			r.log.Warn("Unable to resolve custom property, ignoring",
				zap.String("name", name), zap.String("value", value), zap.Error(err))
			continue
		}
		out.Set(name, res)
	}
	r.log.Debug("References resolved", zap.Int("entries", raw.Len()), zap.Int("resolved", out.Len()))
	return out
}

// taint is a set of names whose own resolution is still in progress and
// which were reached again through references. A value obtained through
// such a reference belongs to a cycle.
type taint map[string]struct{}

func (t taint) add(o taint) taint {
	if len(o) == 0 {
		return t
	}
	if t == nil {
		t = make(taint, len(o))
	}
	maps.Copy(t, o)
	return t
}

// resolution holds state of resolving a single top level entry.
type resolution struct {
	*Resolver
	raw        *StringMap
	active     map[string]struct{}
	expansions int
}

// expand substitutes all var() calls in value, which belongs to property
// owner. Any failed reference without usable fallback fails the whole value.
func (rs *resolution) expand(owner, value string, depth int) (string, taint, error) {
	if depth > rs.maxDepth {
		return "", nil, errDepth
	}
	if css.IndexFunction(value, "var", 0) < 0 {
		return value, nil, nil
	}

	var (
		b       strings.Builder
		tainted taint
	)
	pos := 0
	for {
		start := css.IndexFunction(value, "var", pos)
		if start < 0 {
			b.WriteString(value[pos:])
			break
		}
		open := start + len("var")
		end := css.MatchParen(value, open)
		if end < 0 {
			rs.log.Warn("Unterminated var() left as is",
				zap.String("name", owner), zap.String("text", value[start:]))
			b.WriteString(value[pos:])
			break
		}
		b.WriteString(value[pos:start])

		sub, t, err := rs.call(owner, value[open+1:end], depth)
		if err != nil {
			return "", t, err
		}
		tainted = tainted.add(t)
		b.WriteString(sub)
		pos = end + 1
	}
	return b.String(), tainted, nil
}

// call resolves arguments of a single var() call.
func (rs *resolution) call(owner, args string, depth int) (string, taint, error) {
	rs.expansions++
	if rs.expansions > maxExpansions {
		return "", nil, errBudget
	}

	ref, fallback, hasFallback := strings.Cut(args, ",")
	ref = strings.TrimSpace(ref)
	fallback = strings.TrimSpace(fallback)

	value, t, err := rs.reference(ref, depth)
	if err == nil && len(t) == 0 {
		return value, nil, nil
	}
	if errors.Is(err, errDepth) || errors.Is(err, errBudget) {
		return "", t, err
	}
	if !hasFallback {
		if err == nil {
			err = fmt.Errorf("%w through %s", errCycle, ref)
		}
		return "", t, err
	}

	rs.log.Debug("Using fallback", zap.String("name", owner), zap.String("reference", ref), zap.NamedError("reason", err))
	fb, ft, err := rs.expand(owner, fallback, depth+1)
	return fb, t.add(ft), err
}

// reference resolves value of named custom property with cycle tracking.
func (rs *resolution) reference(name string, depth int) (string, taint, error) {
	if !strings.HasPrefix(name, "--") || len(name) == 2 {
		return "", nil, fmt.Errorf("%w: %q", errBadName, name)
	}
	if _, busy := rs.active[name]; busy {
		return "", taint{name: {}}, fmt.Errorf("%w: %s", errCycle, name)
	}
	value, ok := rs.raw.Get(name)
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", errMissing, name)
	}
	if len(rs.active) >= rs.maxDepth {
		return "", nil, errDepth
	}

	rs.active[name] = struct{}{}
	res, t, err := rs.expand(name, value, depth+1)
	delete(rs.active, name)
	delete(t, name)
	return res, t, err
}
