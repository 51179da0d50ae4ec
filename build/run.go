// Package build implements commands producing token maps from style sheets.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"csstokens/config"
	"csstokens/state"
	"csstokens/theme"
)

// Run implements "resolve" command: it builds token map once and exports it.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("resolve")

	src, err := sourcePath(cmd, env)
	if err != nil {
		return err
	}
	dst := cmd.Args().Get(1)
	if len(dst) > 0 {
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if err := applyFlags(cmd, env, log); err != nil {
		return err
	}
	env.Overwrite = cmd.Bool("overwrite")
	if cmd.IsSet("strict") {
		env.Cfg.Engine.Strict = cmd.Bool("strict")
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", env.Format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, env, log)
}

// sourcePath returns absolute path of the SOURCE argument or configured
// primary style sheet.
func sourcePath(cmd *cli.Command, env *state.LocalEnv) (string, error) {
	src := cmd.Args().Get(0)
	if len(src) == 0 {
		src = env.Cfg.Theme.Primary
	}
	if len(src) == 0 {
		return "", errors.New("no input source has been specified")
	}
	return filepath.Abs(src)
}

// applyFlags stores command line selections in environment, configuration
// values are used for anything not specified.
func applyFlags(cmd *cli.Command, env *state.LocalEnv, log *zap.Logger) (err error) {
	env.Override = cmd.String("override")
	if len(env.Override) == 0 {
		env.Override = env.Cfg.Theme.Override
	}
	if len(env.Override) > 0 {
		if env.Override, err = filepath.Abs(env.Override); err != nil {
			return err
		}
	}

	env.Format = env.Cfg.Output.Format
	if cmd.IsSet("format") {
		if env.Format, err = config.ParseOutputFormat(cmd.String("format")); err != nil {
			log.Warn("Unknown output format requested, using configured one", zap.Error(err), zap.Stringer("format", env.Cfg.Output.Format))
			env.Format = env.Cfg.Output.Format
		}
	}

	env.Sort = env.Cfg.Output.Sort
	if cmd.IsSet("sort") {
		if env.Sort, err = config.ParseSortOrder(cmd.String("sort")); err != nil {
			log.Warn("Unknown sort order requested, using configured one", zap.Error(err), zap.Stringer("sort", env.Cfg.Output.Sort))
			env.Sort = env.Cfg.Output.Sort
		}
	}

	if env.Format != config.OutputFormatTemplate {
		return nil
	}
	if path := cmd.String("template"); len(path) > 0 {
		env.Cfg.Output.Template, env.Cfg.Output.TemplatePath = "", path
	}
	if env.Template, err = env.Cfg.Output.OutputTemplate(); err != nil {
		return err
	}
	return nil
}

// load builds token map from a style sheet or from all style sheets found
// in a directory.
func load(ctx context.Context, loader *theme.Loader, src string, env *state.LocalEnv) (*theme.Result, error) {
	fi, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("input source was not found (%s): %w", src, err)
	}
	if fi.IsDir() {
		return loader.LoadDir(ctx, src, env.Cfg.Theme.Include, env.Cfg.Theme.Exclude, env.Override)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("unexpected path mode for (%s)", src)
	}
	return loader.Load(ctx, src, env.Override)
}

// process handles the core logic independently of CLI framework.
func process(ctx context.Context, src, dst string, env *state.LocalEnv, log *zap.Logger) error {
	loader, err := env.NewLoader()
	if err != nil {
		return err
	}
	exp, err := newExporter(env.Format, env.Sort, env.Cfg.Output.Indent, env.Template)
	if err != nil {
		return err
	}

	res, err := load(ctx, loader, src, env)
	if err != nil {
		return err
	}
	report(res, src, env, log)

	if err := check(res, env); err != nil {
		return err
	}

	out, name, err := openDestination(src, dst, env)
	if err != nil {
		return err
	}
	if err := writeTokens(exp, out, name, res); err != nil {
		return err
	}
	log.Debug("Tokens written", zap.String("destination", name), zap.Int("tokens", res.Tokens.Len()))
	return nil
}

// writeTokens exports result and closes destination, failure to close is
// a failure to write.
func writeTokens(exp *exporter, out io.WriteCloser, name string, res *theme.Result) (err error) {
	err = exp.export(out, res)
	err = multierr.Append(err, out.Close())
	if err != nil {
		return fmt.Errorf("unable to write tokens to %s: %w", name, err)
	}
	return nil
}

// report logs what happened during the build and keeps token dump and
// snapshot of the sources for the debug report.
func report(res *theme.Result, src string, env *state.LocalEnv, log *zap.Logger) {
	sum := res.Summary
	log.Info("Token map built",
		zap.Stringer("id", res.ID),
		zap.Int("files", len(res.Files)),
		zap.Int("declared", sum.Declared),
		zap.Int("tokens", res.Tokens.Len()),
		zap.Int("malformed", sum.Extract.Malformed),
		zap.Duration("elapsed", res.Elapsed))
	if len(sum.Dropped) > 0 {
		log.Warn("Some tokens could not be resolved", zap.Strings("dropped", sum.Dropped))
	}
	if len(sum.Unclassified) > 0 {
		log.Debug("Some tokens were left as raw text", zap.Strings("tokens", sum.Unclassified))
	}

	if res.Cached {
		// already in the report under the same id
		return
	}
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	env.Rpt.StoreData(fmt.Sprintf("tokens/%s-%s.txt", slug.Make(base), res.ID), []byte(res.Tokens.Dump()))
	if err := env.Rpt.StoreSources(fmt.Sprintf("sources/%s", res.ID), res.Files); err != nil {
		log.Warn("Unable to store sources in the report", zap.Error(err))
	}
}

// check enforces strict mode.
func check(res *theme.Result, env *state.LocalEnv) error {
	if !env.Cfg.Engine.Strict || len(res.Summary.Dropped) == 0 {
		return nil
	}
	return fmt.Errorf("strict mode: %d token(s) could not be resolved: %s",
		len(res.Summary.Dropped), strings.Join(res.Summary.Dropped, ", "))
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// openDestination returns writer for the results. Empty dst selects STDOUT,
// existing directory gets file named after the source.
func openDestination(src, dst string, env *state.LocalEnv) (io.WriteCloser, string, error) {
	if len(dst) == 0 {
		return nopCloser{os.Stdout}, "STDOUT", nil
	}

	if fi, err := os.Stat(dst); err == nil && fi.IsDir() {
		dst = filepath.Join(dst, config.OutputFileName(src, env.Format))
	}
	if _, err := os.Stat(dst); err == nil && !env.Overwrite {
		return nil, "", fmt.Errorf("output file already exists: %s", dst)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return nil, "", fmt.Errorf("unable to create destination directory: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return nil, "", fmt.Errorf("unable to create destination file '%s': %w", dst, err)
	}
	return f, dst, nil
}
