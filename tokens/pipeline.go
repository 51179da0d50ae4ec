package tokens

import (
	"go.uber.org/zap"

	"csstokens/css"
)

// Pipeline runs all stages: extract, resolve, evaluate, type. It keeps no
// state between runs and may be used from several goroutines at once.
type Pipeline struct {
	log       *zap.Logger
	extractor *Extractor
	resolver  *Resolver
	evaluator *Evaluator
	typer     *Typer
}

// Option configures Pipeline.
type Option func(*options)

type options struct {
	maxDepth int
}

// WithMaxDepth sets bound on reference chains and expression nesting.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// NewPipeline creates pipeline with all stages sharing the same logger.
func NewPipeline(log *zap.Logger, opts ...Option) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return &Pipeline{
		log:       log,
		extractor: NewExtractor(log),
		resolver:  NewResolver(log, o.maxDepth),
		evaluator: NewEvaluator(log, o.maxDepth),
		typer:     NewTyper(log),
	}
}

// Summary describes what happened to declarations during a single run.
type Summary struct {
	Extract  ExtractStats
	Declared int
	// Dropped lists names which could not be resolved, in declaration order.
	Dropped []string
	// Unclassified lists names typed as css.Raw.
	Unclassified []string
}

// Extract runs only the first stage, used when several sources have to be
// merged before resolution.
func (p *Pipeline) Extract(text string) (*StringMap, ExtractStats) {
	return p.extractor.Scan(text)
}

// Build produces token map from a single style sheet.
func (p *Pipeline) Build(text string) *TokenMap {
	tm, _ := p.Process(p.extractor.Extract(text))
	return tm
}

// BuildLayers extracts base and override sources independently, merges them
// with override taking precedence and produces token map from the result.
func (p *Pipeline) BuildLayers(base, override string) (*TokenMap, Summary) {
	return p.BuildSources(base, override)
}

// BuildSources extracts every text on its own, so malformed text (unclosed
// block or comment) cannot swallow declarations of texts following it.
// Extracted maps are merged in order, later texts take precedence.
func (p *Pipeline) BuildSources(texts ...string) (*TokenMap, Summary) {
	merged := NewStringMap()
	var st ExtractStats
	for _, text := range texts {
		m, s := p.extractor.Scan(text)
		merged = Merge(merged, m)
		st.add(s)
	}
	tm, sum := p.Process(merged)
	sum.Extract = st
	return tm, sum
}

// Process runs remaining stages over already extracted (and merged) raw map.
func (p *Pipeline) Process(raw *StringMap) (*TokenMap, Summary) {
	resolved := p.resolver.Resolve(raw)
	evaluated := p.evaluator.Evaluate(resolved)
	typed := p.typer.Type(evaluated)

	sum := Summary{Declared: raw.Len()}
	for name := range raw.All() {
		if _, ok := resolved.Get(name); !ok {
			sum.Dropped = append(sum.Dropped, name)
		}
	}
	for name, v := range typed.All() {
		if v.Kind() == css.KindRaw {
			sum.Unclassified = append(sum.Unclassified, name)
		}
	}
	p.log.Debug("Token map built",
		zap.Int("declared", sum.Declared),
		zap.Int("tokens", typed.Len()),
		zap.Int("dropped", len(sum.Dropped)),
		zap.Int("unclassified", len(sum.Unclassified)))
	return NewTokenMap(typed, evaluated), sum
}
