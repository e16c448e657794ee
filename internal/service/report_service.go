package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"elmora-backend/internal/assessment"
	"elmora-backend/internal/insight"
	"elmora-backend/internal/repository"
)

// ReportService renders a submitted assessment as a downloadable PDF.
type ReportService interface {
	GenerateReport(userID uint) ([]byte, error)
}

type reportService struct {
	profileRepo    repository.ProfileRepository
	assessmentRepo repository.AssessmentRepository
}

func NewReportService(profileRepo repository.ProfileRepository, assessmentRepo repository.AssessmentRepository) ReportService {
	return &reportService{profileRepo: profileRepo, assessmentRepo: assessmentRepo}
}

func (s *reportService) GenerateReport(userID uint) ([]byte, error) {
	profile, err := s.profileRepo.GetProfileByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	record, err := s.assessmentRepo.GetRecordByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assessment record: %w", err)
	}

	var breakdown []assessment.Answer
	if err := json.Unmarshal([]byte(record.Answers), &breakdown); err != nil {
		return nil, fmt.Errorf("failed to decode answer breakdown: %w", err)
	}
	var generated insight.Insights
	if err := json.Unmarshal([]byte(record.AiInsights), &generated); err != nil {
		return nil, fmt.Errorf("failed to decode insights: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Well-being Assessment Report")
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Name: %s", profile.DisplayName))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Score: %d / %d", record.Score, assessment.MaxScore()))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Category: %s", record.Category))
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Answers")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	for _, ans := range breakdown {
		q, ok := assessment.QuestionByID(ans.QuestionID)
		if !ok {
			continue
		}
		pdf.MultiCell(0, 6, fmt.Sprintf("%s  %s", q.ID, q.Text), "", "L", false)
		if opt, ok := q.Option(ans.Choice); ok {
			pdf.MultiCell(0, 6, fmt.Sprintf("    %s (%d points)", opt.Label, opt.Points), "", "L", false)
		}
		pdf.Ln(2)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Insights")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	for _, line := range generated.Insights {
		pdf.MultiCell(0, 6, "- "+line, "", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Recommendations")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	for _, line := range generated.Recommendations {
		pdf.MultiCell(0, 6, "- "+line, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}
