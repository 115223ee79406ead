package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug lines to a
// charmbracelet logger. Failures are logged at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that log to l. A nil l uses log.Default().
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{logger: l}
}

func (h *LogHooks) OnTagComplete(_ context.Context, tag, login string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("tag failed", "tag", tag, "login", login, "elapsed", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("tag", "tag", tag, "login", login, "elapsed", d.Round(time.Millisecond))
}

func (h *LogHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h *LogHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("upstream request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("upstream response", "method", method, "host", host, "path", path,
		"status", status, "elapsed", d.Round(time.Millisecond))
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("upstream error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ TagHooks   = (*LogHooks)(nil)
	_ CacheHooks = (*LogHooks)(nil)
	_ HTTPHooks  = (*LogHooks)(nil)
)
