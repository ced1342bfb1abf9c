package http

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/graph/export"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	svc *service.AnalysisService
}

func New(svc *service.AnalysisService) *Handler {
	return &Handler{svc: svc}
}

// GetGraph returns the analysed baseline organisation.
func (h *Handler) GetGraph(c *gin.Context) {
	res, err := h.svc.GetGraph(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, export.ToFlow(res))
}

func (h *Handler) LoadCustomGraph(c *gin.Context) {
	var req LoadCustomGraphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.svc.LoadCustomGraph(c.Request.Context(), req.persons(), req.collaborations())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, export.ToFlow(res))
}

func (h *Handler) SimulateMove(c *gin.Context) {
	var req SimulateMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.svc.SimulateMove(c.Request.Context(), service.SimulateRequest{
		PersonID:       req.personID(),
		TargetUnit:     req.targetUnit(),
		Persons:        firstRaw(req.PegawaiList, req.Persons),
		Collaborations: firstRaw(req.KolaborasiList, req.Collaborations),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SimulationResponse{
		FlowGraph:   export.ToFlow(res.Result),
		Report:      res.Report,
		Impact:      res.Impact,
		PersonFound: res.PersonFound,
	})
}

func (h *Handler) GetSnapshot(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) PutSnapshot(c *gin.Context) {
	var req SnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	snap, err := h.svc.ReplaceSnapshot(c.Request.Context(),
		firstRaw(req.Pegawai, req.Persons), firstRaw(req.Kolaborasi, req.Collaborations))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":             true,
		"persons":        len(snap.Persons),
		"collaborations": len(snap.Collaborations),
	})
}

func (h *Handler) Insights(c *gin.Context) {
	ds, err := h.svc.Insights(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, InsightsResponse{Detections: ds})
}

func (h *Handler) GraphDOT(c *gin.Context) {
	dot, err := h.svc.ExportDOT(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/vnd.graphviz; charset=utf-8", []byte(dot))
}

func (h *Handler) ReportXLSX(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.svc.ExportExcel(c.Request.Context(), &buf); err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="org_network_report.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *Handler) History(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	logs, err := h.svc.History(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, HistoryResponse{Logs: logs})
}

func writeError(c *gin.Context, err error) {
	var simErr *domain.SimulationError
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrLogStoreDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.As(err, &simErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": simErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
