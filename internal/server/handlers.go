package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/piwi3910/RodCut/internal/engine"
	"github.com/piwi3910/RodCut/internal/export"
	"github.com/piwi3910/RodCut/internal/history"
	"github.com/piwi3910/RodCut/internal/model"
)

// errHistoryDisabled is reported by the run endpoints without a store.
var errHistoryDisabled = errors.New("run history is disabled")

// writeError maps domain errors to HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, export.ErrEmptyPlan):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, history.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errHistoryDisabled), errors.Is(err, export.ErrNoChrome):
		status = http.StatusServiceUnavailable
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// reportOptions overlays the lang, unit and title query parameters on the
// configured report options.
func (s *Server) reportOptions(c *gin.Context, kerf float64) export.Options {
	opts := s.cfg.Report
	if v := c.Query("lang"); v != "" {
		opts.Language = v
	}
	if v := c.Query("unit"); v != "" {
		opts.Unit = v
	}
	if v := c.Query("title"); v != "" {
		opts.Title = v
	}
	opts.Kerf = kerf
	return opts
}

// handlePlan optimizes a PlanRequest. The response is the plan JSON unless
// ?format= asks for a pdf, html, md or xlsx report; ?engine=chrome prints
// the pdf from the HTML report.
func (s *Server) handlePlan(c *gin.Context) {
	var req model.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
		return
	}

	opt := engine.New(s.cfg.Settings)
	opt.Logger = s.cfg.Logger
	plan, err := opt.Optimize(req)
	if err != nil {
		writeError(c, err)
		return
	}

	if s.cfg.History != nil {
		run, err := s.cfg.History.Save(c.Request.Context(), c.Query("name"), req, plan)
		if err != nil {
			s.cfg.Logger.Error().Err(err).Msg("record run")
		} else {
			c.Header("X-Run-ID", run.ID)
		}
	}

	s.writePlan(c, plan, s.reportOptions(c, req.BladeThickness))
}

func (s *Server) writePlan(c *gin.Context, plan model.CuttingPlan, opts export.Options) {
	switch format := c.DefaultQuery("format", "json"); format {
	case "json":
		c.JSON(http.StatusOK, plan)

	case "md", "markdown":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(export.RenderMarkdown(plan, opts)))

	case "html":
		doc, err := export.RenderHTML(plan, opts)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))

	case "pdf":
		var pdf []byte
		if c.Query("engine") == "chrome" {
			if len(plan.Plan) == 0 {
				writeError(c, export.ErrEmptyPlan)
				return
			}
			out, err := export.PrintPlan(c.Request.Context(), plan, opts, s.cfg.ChromePath)
			if err != nil {
				writeError(c, err)
				return
			}
			pdf = out
		} else {
			var buf bytes.Buffer
			if err := export.WritePDF(&buf, plan, opts); err != nil {
				writeError(c, err)
				return
			}
			pdf = buf.Bytes()
		}
		c.Header("Content-Disposition", `attachment; filename="cutting-plan.pdf"`)
		c.Data(http.StatusOK, "application/pdf", pdf)

	case "xlsx":
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, plan, opts); err != nil {
			writeError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="cutting-plan.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown format %q", format)})
	}
}

// estimateRequest is the body of POST /api/estimate.
type estimateRequest struct {
	Cuts         []model.RodSpec `json:"cuts"`
	RodLength    float64         `json:"rodLength"`
	KerfWidth    float64         `json:"kerfWidth"`
	WastePercent float64         `json:"wastePercent"`
}

func (s *Server) handleEstimate(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
		return
	}
	if req.RodLength <= 0 || req.KerfWidth < 0 || req.WastePercent < 0 || len(req.Cuts) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rodLength must be positive, kerfWidth and wastePercent non-negative, and cuts non-empty"})
		return
	}
	c.JSON(http.StatusOK, model.CalculatePurchaseEstimate(req.Cuts, req.RodLength, req.KerfWidth, req.WastePercent))
}

// comparisonEntry is one row of the POST /api/compare response.
type comparisonEntry struct {
	Name             string  `json:"name"`
	BladeThickness   float64 `json:"bladeThickness"`
	SearchBudget     int     `json:"searchBudget"`
	RodsUsed         int     `json:"rodsUsed"`
	TotalCuts        int     `json:"totalCuts"`
	WastePercentage  float64 `json:"wastePercentage"`
	UnfulfilledCount int     `json:"unfulfilledCount"`
	Error            string  `json:"error,omitempty"`
}

func (s *Server) handleCompare(c *gin.Context) {
	var req model.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
		return
	}

	results := engine.CompareScenarios(engine.BuildDefaultScenarios(s.cfg.Settings, req))
	if len(results) > 0 && results[0].Err != nil {
		// The unchanged request is invalid, so every scenario is.
		writeError(c, results[0].Err)
		return
	}

	entries := make([]comparisonEntry, 0, len(results))
	for _, r := range results {
		e := comparisonEntry{
			Name:             r.Scenario.Name,
			BladeThickness:   r.Scenario.Request.BladeThickness,
			SearchBudget:     r.Scenario.Settings.SearchBudget,
			RodsUsed:         r.RodsUsed,
			TotalCuts:        r.TotalCuts,
			WastePercentage:  r.WastePercent,
			UnfulfilledCount: r.UnfulfilledCount,
		}
		if r.Err != nil {
			e.Error = r.Err.Error()
		}
		entries = append(entries, e)
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": entries})
}

func (s *Server) handleListRuns(c *gin.Context) {
	if s.cfg.History == nil {
		writeError(c, errHistoryDisabled)
		return
	}
	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	runs, err := s.cfg.History.List(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (s *Server) handleGetRun(c *gin.Context) {
	if s.cfg.History == nil {
		writeError(c, errHistoryDisabled)
		return
	}
	run, err := s.cfg.History.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if c.Query("format") != "" {
		s.writePlan(c, run.Plan, s.reportOptions(c, run.Request.BladeThickness))
		return
	}
	c.JSON(http.StatusOK, run)
}

func (s *Server) handleDeleteRun(c *gin.Context) {
	if s.cfg.History == nil {
		writeError(c, errHistoryDisabled)
		return
	}
	if err := s.cfg.History.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
