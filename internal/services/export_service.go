package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/school-service/internal/authz"
	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ExportEvaluations renders the evaluation sheet of one school/year pair.
func (s *exportService) ExportEvaluations(ctx context.Context, schoolID string, academicYearID uint, actor *authz.Principal) (*ExportResult, error) {
	school, err := resolveSchoolID(actor, schoolID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Exporting evaluations", "school_id", school, "year_id", academicYearID, "actor_id", actor.ID)

	year, err := s.repo.AcademicYear().GetByID(ctx, academicYearID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrYearNotFound
		}
		return nil, fmt.Errorf("failed to get academic year: %w", err)
	}
	if year.SchoolID != school {
		return nil, NewPermissionError(actor.ID, "evaluation", "export", "academic year belongs to another school")
	}

	evals, err := s.repo.Evaluation().ListForExport(ctx, school, academicYearID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Evaluations"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"#", "User ID", "Position", "Grade", "Evaluator", "Comment", "Evaluated At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, eval := range evals {
		row := i + 2
		comment := ""
		if eval.Comment != nil {
			comment = *eval.Comment
		}
		values := []interface{}{
			i + 1,
			eval.PersonnelRecord.UserID,
			eval.PersonnelRecord.Position,
			gradeLabel(eval.Grade),
			eval.EvaluatorID,
			comment,
			eval.CreatedAt.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render evaluation export: %w", err)
	}

	s.logger.Info("Evaluations exported", "school_id", school, "year_id", academicYearID, "rows", len(evals))

	return &ExportResult{
		FileName:    fmt.Sprintf("evaluations_%d_%d.xlsx", year.FromYear, year.ToYear),
		ContentType: xlsxContentType,
		Data:        buf.Bytes(),
	}, nil
}

// ExportPersonnel renders the full personnel roster of a school.
func (s *exportService) ExportPersonnel(ctx context.Context, schoolID string, actor *authz.Principal) (*ExportResult, error) {
	school, err := resolveSchoolID(actor, schoolID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Exporting personnel roster", "school_id", school, "actor_id", actor.ID)

	records, _, err := s.repo.Personnel().List(ctx, repositories.PersonnelFilters{
		SchoolID: &school,
		Limit:    10000,
	})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Personnel"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"#", "User ID", "Position", "Department ID", "Hired At", "Note"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, record := range records {
		row := i + 2
		dept := ""
		if record.DepartmentID != nil {
			dept = fmt.Sprintf("%d", *record.DepartmentID)
		}
		hired := ""
		if record.HiredAt != nil {
			hired = record.HiredAt.Format("2006-01-02")
		}
		note := ""
		if record.Note != nil {
			note = *record.Note
		}
		values := []interface{}{i + 1, record.UserID, record.Position, dept, hired, note}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render personnel export: %w", err)
	}

	return &ExportResult{
		FileName:    fmt.Sprintf("personnel_%s.xlsx", school),
		ContentType: xlsxContentType,
		Data:        buf.Bytes(),
	}, nil
}

func gradeLabel(grade models.EvaluationGrade) string {
	switch grade {
	case models.GradeExcellent:
		return "Xuat sac"
	case models.GradeGood:
		return "Tot"
	case models.GradeAverage:
		return "Dat"
	case models.GradePoor:
		return "Chua dat"
	default:
		return string(grade)
	}
}
