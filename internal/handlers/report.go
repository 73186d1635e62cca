// internal/handlers/report.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Mahekpandey/DyslexiaDetection/internal/session"
)

// Report handles GET /api/sessions/:id/report. It renders the session's
// probability-over-time chart from the in-memory tick history.
func (h *SessionHandler) Report(c *gin.Context) {
	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	history := s.History()
	if len(history) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No reading-test history for this session"})
		return
	}

	line := generateProbabilityChart(s.ID.String(), history)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := line.Render(c.Writer); err != nil {
		h.log.Error("Failed to render session report", zap.Error(err))
	}
}

func generateProbabilityChart(sessionID string, history []session.TickPoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Dyslexia Probability Over Time",
			Subtitle: fmt.Sprintf("Session %s", sessionID),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "elapsed (s)",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "probability (%)",
			Max:  100,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	items := make([]opts.LineData, 0, len(history))
	for _, point := range history {
		items = append(items, opts.LineData{Value: []interface{}{point.Elapsed, point.Probability}})
	}

	line.AddSeries("probability", items).SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}
