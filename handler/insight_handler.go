package handler

import (
	"github.com/gin-gonic/gin"

	"mindwell/middleware"
	"mindwell/usecase"
	"mindwell/utils"
)

func GetInsightsHandler(c *gin.Context, insightService *usecase.InsightService) {
	insights, err := insightService.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "Failed to fetch insights")
		return
	}
	utils.Success(c, insights)
}

func GetInsightHandler(c *gin.Context, insightService *usecase.InsightService) {
	insight, err := insightService.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch insight")
		return
	}
	utils.Success(c, insight)
}

// GenerateInsightHandler runs the configured generator over the caller's
// recent entries.
func GenerateInsightHandler(c *gin.Context, insightService *usecase.InsightService) {
	insight, err := insightService.Generate(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "Failed to generate insights")
		return
	}
	utils.Created(c, insight)
}
