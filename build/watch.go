package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"csstokens/state"
	"csstokens/theme"
)

// Watch implements "watch" command: token map is exported again every time
// any of its sources changes, until program is interrupted.
func Watch(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("watch")

	src, err := sourcePath(cmd, env)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, watch always writes to STDOUT", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	if err := applyFlags(cmd, env, log); err != nil {
		return err
	}

	log.Info("Watching sources", zap.String("source", src), zap.String("override", env.Override))
	defer func(start time.Time) {
		log.Info("Watching stopped", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return watch(ctx, src, os.Stdout, env, cmd.Duration("debounce"), log)
}

func watch(ctx context.Context, src string, out io.Writer, env *state.LocalEnv, debounce time.Duration, log *zap.Logger) error {
	loader, err := env.NewLoader()
	if err != nil {
		return err
	}
	exp, err := newExporter(env.Format, env.Sort, env.Cfg.Output.Indent, env.Template)
	if err != nil {
		return err
	}
	w := theme.NewWatcher(env.Log, debounce)
	err = w.Watch(ctx,
		func(ctx context.Context) (*theme.Result, error) {
			return load(ctx, loader, src, env)
		},
		func(res *theme.Result) {
			report(res, src, env, log)
			if err := exp.export(out, res); err != nil {
				log.Error("Unable to write tokens", zap.Error(err))
			}
		})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("unable to watch sources: %w", err)
	}
	return nil
}
