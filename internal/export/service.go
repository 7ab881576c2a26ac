package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hansol-kim/building-ledger/internal/entity"
	"github.com/hansol-kim/building-ledger/internal/repository"
)

// Service produces XLSX bytes for listing exports.
type Service struct {
	repo   repository.BuildingRepository
	logger *slog.Logger
}

func NewService(repo repository.BuildingRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// ExportBuildingsXLSX returns an XLSX workbook (as bytes) with one row per
// building, newest first, in the same order the list endpoint serves.
func (s *Service) ExportBuildingsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	buildings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query buildings: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Buildings"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// drop excelize's default sheet
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"건물명",
		"주소",
		"용도지역",
		"토지면적(㎡)",
		"연면적(㎡)",
		"규모",
		"준공년도",
		"승강기",
		"매매가(원)",
		"보증금(원)",
		"월임대료(원)",
		"수익률(%)",
		"임대차(건)",
		"종합점수",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for i := range buildings {
		b := &buildings[i]

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, b.Name)
		write(2, b.Address)
		if b.LandInfo != nil {
			write(3, b.LandInfo.Zoning)
			write(4, b.LandInfo.AreaSqm)
		}
		if info := b.BuildingInfo; info != nil {
			write(5, info.TotalAreaSqm)
			write(6, info.FloorsLabel)
			if info.CompletionDate != nil {
				write(7, info.CompletionDate.Format("2006-01-02"))
			}
			write(8, elevatorLabel(info))
		}
		if b.PriceInfo != nil {
			write(9, b.PriceInfo.SalePrice)
			write(10, b.PriceInfo.Deposit)
			write(11, b.PriceInfo.MonthlyRent)
			write(12, b.PriceInfo.YieldPercent)
		}
		write(13, len(b.Leases))
		if b.AnalysisScore != nil {
			write(14, b.AnalysisScore.TotalScore)
		}

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 28) // name
	_ = f.SetColWidth(sheet, "B", "B", 40) // address
	_ = f.SetColWidth(sheet, "C", "C", 20) // zoning
	_ = f.SetColWidth(sheet, "I", "K", 16) // money
	_ = f.SetColWidth(sheet, "G", "G", 12) // completion

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(buildings),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func elevatorLabel(info *entity.BuildingInfo) string {
	if info.HasElevator {
		return "유"
	}
	return "무"
}
