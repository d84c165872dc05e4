package http

import (
	"net/http"
	"strconv"

	"github.com/SyphaxBN/PointageApp-Back/internal/domain/report"
	"github.com/SyphaxBN/PointageApp-Back/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	History(w http.ResponseWriter, r *http.Request)
	LastRecord(w http.ResponseWriter, r *http.Request)
	TodayCount(w http.ResponseWriter, r *http.Request)
	Recent(w http.ResponseWriter, r *http.Request)
	WeeklyTrend(w http.ResponseWriter, r *http.Request)
	Dashboard(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// History implements ReportHandler. The date query parameter is
// optional; without it the full history is returned.
func (h *reportHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	result, err := h.reportService.HistoryForDate(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// LastRecord implements ReportHandler.
func (h *reportHandlerImpl) LastRecord(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	result, err := h.reportService.LastRecordFor(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TodayCount implements ReportHandler.
func (h *reportHandlerImpl) TodayCount(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.CountToday(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Recent implements ReportHandler. A missing or unparsable limit falls
// back to the service default.
func (h *reportHandlerImpl) Recent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.reportService.Recent(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// WeeklyTrend implements ReportHandler.
func (h *reportHandlerImpl) WeeklyTrend(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.WeeklyTrend(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Dashboard implements ReportHandler.
func (h *reportHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.Dashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
