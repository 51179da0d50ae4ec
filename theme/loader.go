// Package theme reads style sheet sources from disk and turns them into
// token maps. Sources may be split into several files through @import and
// may be layered: an override source is merged on top of the primary one.
package theme

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"csstokens/tokens"
)

const (
	DefaultCacheSize = 16
	// maxImportDepth bounds @import chains.
	maxImportDepth = 16
)

// Result is a built token map with information about how it was produced.
type Result struct {
	ID      uuid.UUID
	Tokens  *tokens.TokenMap
	Summary tokens.Summary
	// Files lists every file read, imports included, in reading order.
	Files   []string
	Charset map[string]string
	Elapsed time.Duration
	Cached  bool
}

// Loader builds token maps from files. Results are cached by file paths and
// contents, so loading unchanged sources again returns the same immutable
// token map.
type Loader struct {
	log      *zap.Logger
	pipeline *tokens.Pipeline
	cache    *lru.Cache[string, *Result]
}

// NewLoader creates loader. Non positive cacheSize selects DefaultCacheSize.
func NewLoader(log *zap.Logger, pipeline *tokens.Pipeline, cacheSize int) (*Loader, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if pipeline == nil {
		pipeline = tokens.NewPipeline(log)
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, *Result](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("unable to create token map cache: %w", err)
	}
	return &Loader{log: log.Named("theme"), pipeline: pipeline, cache: cache}, nil
}

// source is a single layer: decoded texts of its files, imports preceding
// files importing them.
type source struct {
	texts   []string
	files   []string
	charset map[string]string
}

// Load builds token map from primary file and optional override file (empty
// string means no override).
func (l *Loader) Load(ctx context.Context, primary, override string) (*Result, error) {
	if len(primary) == 0 {
		return nil, errors.New("no primary source has been specified")
	}

	var err error
	base, er := l.readLayer(ctx, []string{primary})
	err = multierr.Append(err, er)

	var over source
	if len(override) > 0 {
		over, er = l.readLayer(ctx, []string{override})
		err = multierr.Append(err, er)
	}
	if err != nil {
		return nil, err
	}
	return l.build(base, over)
}

// LoadDir builds token map from all style sheets found under dir, see
// Discover. Files are read in natural order of their paths and form
// the primary layer.
func (l *Loader) LoadDir(ctx context.Context, dir string, include, exclude []string, override string) (*Result, error) {
	files, err := Discover(dir, include, exclude)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no style sheets found in %q", dir)
	}
	l.log.Debug("Style sheets discovered", zap.String("dir", dir), zap.Strings("files", files))

	base, err := l.readLayer(ctx, files)
	if err != nil {
		return nil, err
	}
	var over source
	if len(override) > 0 {
		if over, err = l.readLayer(ctx, []string{override}); err != nil {
			return nil, err
		}
	}
	return l.build(base, over)
}

func (l *Loader) build(base, over source) (*Result, error) {
	files := append(append([]string{}, base.files...), over.files...)
	charset := make(map[string]string, len(files))
	maps.Copy(charset, base.charset)
	maps.Copy(charset, over.charset)

	key := cacheKey(base, over)
	if res, ok := l.cache.Get(key); ok {
		l.log.Debug("Token map served from cache", zap.Stringer("id", res.ID))
		cached := *res
		cached.Files, cached.Charset, cached.Cached = files, charset, true
		return &cached, nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("unable to generate build id: %w", err)
	}

	start := time.Now()
	tm, sum := l.pipeline.BuildSources(slices.Concat(base.texts, over.texts)...)
	res := &Result{
		ID:      id,
		Tokens:  tm,
		Summary: sum,
		Files:   files,
		Charset: charset,
		Elapsed: time.Since(start),
	}
	l.cache.Add(key, res)

	l.log.Debug("Token map built",
		zap.Stringer("id", id),
		zap.Int("files", len(res.Files)),
		zap.Int("tokens", tm.Len()),
		zap.Int("dropped", len(sum.Dropped)),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

// cacheKey digests paths and texts of both layers.
func cacheKey(base, over source) string {
	h := sha256.New()
	for _, layer := range []source{base, over} {
		for i, f := range layer.files {
			h.Write([]byte(f))
			h.Write([]byte{0})
			h.Write([]byte(layer.texts[i]))
			h.Write([]byte{0})
		}
		h.Write([]byte{1})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// readLayer reads files in order, imports are read before files importing
// them.
func (l *Loader) readLayer(ctx context.Context, files []string) (source, error) {
	src := source{charset: make(map[string]string)}
	seen := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return source{}, err
		}
		if err := l.readFile(ctx, abs, 0, seen, &src); err != nil {
			return source{}, err
		}
	}
	return src, nil
}

// readFile appends texts of imported files followed by text of path itself. Only the top level file is required to exist, unreadable imports
// are reported and skipped. Every file is read at most once.
func (l *Loader) readFile(ctx context.Context, path string, depth int, seen map[string]bool, src *source) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if seen[path] {
		l.log.Debug("Style sheet already included, skipping", zap.String("file", path))
		return nil
	}
	seen[path] = true

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read style sheet: %w", err)
	}
	text, cs, err := Decode(data, l.log)
	if err != nil {
		return fmt.Errorf("unable to decode %q: %w", path, err)
	}
	src.charset[path] = cs

	for _, imp := range scanHeader([]byte(text), l.log).imports {
		if isRemote(imp) {
			l.log.Warn("Remote import is not supported, skipping", zap.String("file", path), zap.String("import", imp))
			continue
		}
		if depth+1 > maxImportDepth {
			l.log.Warn("Imports are nested too deep, skipping", zap.String("file", path), zap.String("import", imp))
			continue
		}
		target := imp
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), filepath.FromSlash(imp))
		}
		if err := l.readFile(ctx, target, depth+1, seen, src); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			l.log.Warn("Unable to import style sheet, skipping", zap.String("file", path), zap.String("import", imp), zap.Error(err))
		}
	}

	src.files = append(src.files, path)
	src.texts = append(src.texts, text)
	return nil
}

func isRemote(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://") || strings.HasPrefix(l, "//")
}
