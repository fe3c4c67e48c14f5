package export

import (
	"bytes"
	"fmt"

	"github.com/maiconsbotelho/sinucalabs/internal/ranking"
	"github.com/xuri/excelize/v2"
)

const (
	RankingSheet = "Ranking"
	SummarySheet = "Summary"
	dateLayout   = "2006-01-02"
)

var rankingHeader = []any{"Rank", "Team", "Wins", "Losses", "Games", "Win %", "Matches Won", "Matches Lost", "Level"}

// RankingWorkbook renders data as an XLSX workbook with a ranking sheet and a
// summary sheet.
func RankingWorkbook(data ranking.RankingData) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), RankingSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	if err := writeRankings(f, data.Rankings, bold); err != nil {
		return nil, err
	}
	if err := writeSummary(f, data, bold); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func writeRankings(f *excelize.File, rows []ranking.TeamStats, headerStyle int) error {
	if err := setRow(f, RankingSheet, 1, rankingHeader); err != nil {
		return err
	}
	if err := f.SetRowStyle(RankingSheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	for i, s := range rows {
		values := []any{
			i + 1,
			ranking.TeamName(s.Team),
			s.Wins,
			s.Losses,
			s.GamesPlayed,
			s.WinRate,
			s.MatchesWon,
			s.MatchesLost,
			string(ranking.PerformanceLevel(s.WinRate)),
		}
		if err := setRow(f, RankingSheet, i+2, values); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(RankingSheet, "B", "B", 36); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, data ranking.RankingData, labelStyle int) error {
	rows := [][]any{
		{"Period", string(data.Period)},
		{"Mode", string(data.Mode)},
		{"Start", data.StartDate.Format(dateLayout)},
		{"End", data.EndDate.Format(dateLayout)},
		{"Teams", data.Summary.TotalTeams},
		{"Matches", data.Summary.TotalMatches},
		{"Games", data.Summary.TotalGames},
		{"Average win %", data.Summary.AvgWinRate},
	}
	for i, row := range rows {
		if err := setRow(f, SummarySheet, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetColStyle(SummarySheet, "A", labelStyle); err != nil {
		return fmt.Errorf("style labels: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	axis, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, axis, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
