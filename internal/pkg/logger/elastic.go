package logger

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"time"
)

const (
	esSlowThreshold = 500 * time.Millisecond
	esBodyLogLimit  = 1000
)

// ESTransport 包装 ES 的 HTTP 传输层并记录请求与响应摘要
type ESTransport struct {
	Transport http.RoundTripper
}

func (t *ESTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	var reqBody []byte
	if req.Body != nil {
		reqBody, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(reqBody))
	}

	resp, err := t.Transport.RoundTrip(req)
	elapsed := time.Since(start)

	fields := []any{
		log.String("method", req.Method),
		log.String("url", req.URL.String()),
		log.Duration("latency", elapsed),
		log.String("req_body", truncateBody(reqBody)),
	}

	if err != nil {
		log.ErrorContext(req.Context(), "ES Query Error", append(fields, log.Any("err", err))...)
		return nil, err
	}

	var resBody []byte
	if resp.Body != nil {
		resBody, _ = io.ReadAll(resp.Body)
		resp.Body = io.NopCloser(bytes.NewBuffer(resBody))
	}
	fields = append(fields, log.Int("status", resp.StatusCode), log.String("res_body", truncateBody(resBody)))

	if elapsed > esSlowThreshold {
		log.WarnContext(req.Context(), "ES Query Slow", fields...)
	} else {
		log.InfoContext(req.Context(), "ES Query", fields...)
	}

	return resp, nil
}

func truncateBody(body []byte) string {
	if len(body) > esBodyLogLimit {
		return string(body[:esBodyLogLimit]) + "...[truncated]"
	}
	return string(body)
}
