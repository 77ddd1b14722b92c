package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/Jgilbert-dev/inspectrixV4/api/transport"
	"github.com/Jgilbert-dev/inspectrixV4/domain"
	"github.com/Jgilbert-dev/inspectrixV4/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status := statusFor(domain.CodeOf(err))
	h.respondJSON(ctx, status, transport.NewError(string(domain.CodeOf(err)), err.Error()))
}

func (h baseHandler) userID(ctx *fasthttp.RequestCtx) string {
	return string(ctx.Request.Header.Peek("X-User-ID"))
}

func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeUnauthorized, domain.ErrCodeInvalidToken:
		return http.StatusUnauthorized
	case domain.ErrCodeForbidden:
		return http.StatusForbidden
	case domain.ErrCodeInvalid, domain.ErrCodeWeakPassword:
		return http.StatusBadRequest
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeConflict:
		return http.StatusConflict
	case domain.ErrCodeProfileCreate:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
