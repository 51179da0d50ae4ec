package state

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"csstokens/theme"
	"csstokens/tokens"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
	}
}

// NewLoader builds theme loader configured from loaded configuration.
func (e *LocalEnv) NewLoader() (*theme.Loader, error) {
	if e.Cfg == nil {
		return nil, errors.New("configuration is not loaded")
	}
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}
	pipeline := tokens.NewPipeline(log, tokens.WithMaxDepth(e.Cfg.Engine.MaxDepth))
	return theme.NewLoader(log, pipeline, e.Cfg.Theme.CacheSize)
}
