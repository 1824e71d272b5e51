package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/execsgroup/zowehlife-sub005/internal/repository"
	"github.com/execsgroup/zowehlife-sub005/internal/status"
)

// PeopleExportHeader roster export column order.
var PeopleExportHeader = []string{
	"First Name",
	"Last Name",
	"Type",
	"Status",
	"Email",
	"Phone",
	"Next Follow-up",
	"Registered",
}

// exportKindLabels person kind -> export label.
var exportKindLabels = map[string]string{
	string(status.KindConvert):   "Convert",
	string(status.KindNewMember): "New Member",
	string(status.KindMember):    "Member",
}

// ExportService generates the people roster spreadsheet. Status cells
// use the export label table, which is allowed to differ from UI copy.
type ExportService struct {
	people repository.PeopleRepo
	logger *zap.Logger
}

func NewExportService(people repository.PeopleRepo, logger *zap.Logger) *ExportService {
	return &ExportService{people: people, logger: logger}
}

// exportPageSize repo page size while draining the roster.
const exportPageSize = 500

// BuildPeopleExport renders the ministry's roster (optionally filtered)
// as an xlsx file. An unknown status token aborts the export: a report
// guessing labels would hide bad data.
func (s *ExportService) BuildPeopleExport(ctx context.Context, ministryID string, filter repository.PersonFilters) ([]byte, error) {
	f := excelize.NewFile()
	// Don't defer Close here: WriteTo needs the file open.

	sheetName := "People"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, h := range PeopleExportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}
	endCell, _ := excelize.CoordinatesToCellName(len(PeopleExportHeader), 1)
	_ = f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	row := 2
	for page := 1; ; page++ {
		people, total, err := s.people.ListPeople(ctx, ministryID, filter, page, exportPageSize)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to load people for export: %w", err)
		}

		for _, p := range people {
			label, err := status.ExportLabel(p.Status)
			if err != nil {
				f.Close()
				s.logger.Error("Export hit unknown status token",
					zap.String("person_id", p.PersonID),
					zap.String("token", p.Status),
				)
				return nil, fmt.Errorf("people export: %w", err)
			}

			kindLabel := exportKindLabels[p.Kind]
			if kindLabel == "" {
				kindLabel = p.Kind
			}

			followup := ""
			if p.NextFollowupDate != nil {
				followup = p.NextFollowupDate.Format("2006-01-02")
				if p.NextFollowupTime != "" {
					followup += " " + p.NextFollowupTime
				}
			}

			values := []any{
				p.FirstName,
				p.LastName,
				kindLabel,
				label,
				p.Email,
				p.Phone,
				followup,
				p.CreatedAt.Format("2006-01-02"),
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				if err := f.SetCellValue(sheetName, cell, v); err != nil {
					f.Close()
					return nil, fmt.Errorf("failed to write row: %w", err)
				}
			}
			row++
		}

		if page*exportPageSize >= total || len(people) == 0 {
			break
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to render export: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close export file: %w", err)
	}

	s.logger.Info("Generated people export",
		zap.String("ministry_id", ministryID),
		zap.Int("rows", row-2),
	)
	return buf.Bytes(), nil
}

// ExportFilename attachment name for a roster download.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("people-%s.xlsx", now.Format("20060102-150405"))
}
