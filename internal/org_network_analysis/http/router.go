package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/get-graph", h.GetGraph)
	rg.POST("/load-custom-graph", h.LoadCustomGraph)
	rg.POST("/simulate-move", h.SimulateMove)

	rg.GET("/snapshot", h.GetSnapshot)
	rg.PUT("/snapshot", h.PutSnapshot)

	rg.GET("/insights", h.Insights)
	rg.GET("/graph.dot", h.GraphDOT)
	rg.GET("/report.xlsx", h.ReportXLSX)
	rg.GET("/history", h.History)
}
