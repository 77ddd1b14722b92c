package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/Jgilbert-dev/inspectrixV4/api/transport"
	"github.com/Jgilbert-dev/inspectrixV4/domain"
	"github.com/Jgilbert-dev/inspectrixV4/pkg/httpcontext"
	"github.com/Jgilbert-dev/inspectrixV4/repository"
	reportUC "github.com/Jgilbert-dev/inspectrixV4/usecase/report"
)

type ReportHandler struct {
	baseHandler
	uc *reportUC.UseCase
}

func NewReportHandler(uc *reportUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List the caller's inspection reports
// @Tags reports
// @Router /api/v1/reports [get]
func (h *ReportHandler) ListReports(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing user id"))
		return
	}

	filter := repository.ReportFilter{
		InspectorID: userID,
		Status:      string(ctx.QueryArgs().Peek("status")),
		Limit:       ctx.QueryArgs().GetUintOrZero("limit"),
		Offset:      ctx.QueryArgs().GetUintOrZero("offset"),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	reports, err := h.uc.ListReports(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, reports)
}

// @Summary File a new inspection report
// @Tags reports
// @Router /api/v1/reports [post]
func (h *ReportHandler) CreateReport(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing user id"))
		return
	}

	report, ok := h.decodeReport(ctx, userID)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateReport(stdCtx, report)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update an inspection report
// @Tags reports
// @Router /api/v1/reports/{id} [put]
func (h *ReportHandler) UpdateReport(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing user id"))
		return
	}

	report, ok := h.decodeReport(ctx, userID)
	if !ok {
		return
	}
	report.ID, _ = ctx.UserValue("id").(string)
	if report.ID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing report id"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateReport(stdCtx, report)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete an inspection report
// @Tags reports
// @Router /api/v1/reports/{id} [delete]
func (h *ReportHandler) DeleteReport(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing user id"))
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing report id"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteReport(stdCtx, id, userID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

func (h *ReportHandler) decodeReport(ctx *fasthttp.RequestCtx, userID string) (*domain.Report, bool) {
	var req transport.ReportRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Title == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload"))
		return nil, false
	}

	report := &domain.Report{
		ID:          req.ID,
		InspectorID: userID,
		Title:       req.Title,
		Notes:       req.Notes,
		Status:      req.Status,
		Severity:    req.Severity,
		Findings:    req.Findings,
	}
	if req.InspectedAt != "" {
		if ts, err := time.Parse(time.RFC3339, req.InspectedAt); err == nil {
			report.InspectedAt = &ts
		}
	}
	return report, true
}
