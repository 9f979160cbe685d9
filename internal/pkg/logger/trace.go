package logger

import (
	"context"
	log "log/slog"
)

// TraceIDKey 贯穿请求与任务的链路标识在 ctx / gin keys 中的键名
const TraceIDKey = "trace_id"

// ContextHandler 从 ctx 提取 trace_id 附加到每条日志
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
			r.AddAttrs(log.String(TraceIDKey, traceID))
		}
	}
	return h.Handler.Handle(ctx, r)
}
