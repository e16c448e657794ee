package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"elmora-backend/internal/assessment"
	"elmora-backend/internal/insight"
	"elmora-backend/internal/onboarding"
	"elmora-backend/internal/service"
	"elmora-backend/utilities"
)

// AssessmentController serves the question bank, the stateless analyze
// endpoint, the completion status and the PDF report.
type AssessmentController struct {
	Generator     *insight.Generator
	StatusService service.StatusService
	ReportService service.ReportService
}

func NewAssessmentController(generator *insight.Generator, statusService service.StatusService, reportService service.ReportService) *AssessmentController {
	return &AssessmentController{
		Generator:     generator,
		StatusService: statusService,
		ReportService: reportService,
	}
}

// GetQuestions returns the fixed question bank in display order.
func (ac *AssessmentController) GetQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": assessment.Bank(), "max_score": assessment.MaxScore()})
}

type analyzeRequest struct {
	Answers []assessment.Answer `json:"answers"`
	Basics  onboarding.Basics   `json:"basics"`
}

// Analyze recomputes score and category server-side from the submitted
// answers and runs insight generation. The client-side preview is never
// trusted; both paths share the same scoring engine.
func (ac *AssessmentController) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	result, err := assessment.Score(req.Answers)
	if err != nil {
		var missing *assessment.MissingAnswerError
		var invalid *assessment.InvalidChoiceError
		if errors.As(err, &missing) || errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	generated := ac.Generator.Generate(result.Score, result.Category, req.Basics.Name, req.Basics.Bio)

	c.JSON(http.StatusOK, gin.H{
		"score":           result.Score,
		"percent":         result.Percent,
		"category":        result.Category.String(),
		"insights":        generated.Insights,
		"recommendations": generated.Recommendations,
	})
}

// GetStatus reports whether the user has completed the assessment.
func (ac *AssessmentController) GetStatus(c *gin.Context) {
	userID, ok := utilities.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessment_completed": ac.StatusService.AssessmentCompleted(userID)})
}

// DownloadReport streams the PDF result report.
func (ac *AssessmentController) DownloadReport(c *gin.Context) {
	userID, ok := utilities.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	pdfBytes, err := ac.ReportService.GenerateReport(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="wellbeing_report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
