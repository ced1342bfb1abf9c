package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/navigara/navigara-backend/internal/assessment/scoreparse"
	"github.com/navigara/navigara-backend/internal/logging"
)

type ExtractScoreRequest struct {
	Text string `json:"text" binding:"required"`
	Kind string `json:"kind" binding:"required"`
}

type ExtractScoreResponse struct {
	Score int  `json:"score"`
	Found bool `json:"found"`
}

// ExtractScore returns the score found in an assessment write-up, or the
// default score with found=false.
func ExtractScore(c *gin.Context) {
	var req ExtractScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text and kind are required"})
		return
	}

	kind := scoreparse.Kind(strings.ToLower(strings.TrimSpace(req.Kind)))
	if kind != scoreparse.KindPotential && kind != scoreparse.KindPerformance {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be potential or performance"})
		return
	}

	score, ok := scoreparse.Extract(kind, req.Text)
	if !ok {
		logging.FromContext(c.Request.Context()).Debug("no score found in assessment text",
			zap.String("kind", string(kind)))
	}
	c.JSON(http.StatusOK, ExtractScoreResponse{Score: scoreparse.OrDefault(score, ok), Found: ok})
}

func Register(rg *gin.RouterGroup) {
	rg.POST("/extract-score", ExtractScore)
}
