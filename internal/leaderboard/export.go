package leaderboard

import (
	"bytes"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Leaderboard"

var xlsxHeader = []any{"Rank", "Team", "Wins", "Games Won", "Head-to-Head Wins", "Sets Won", "Points Ratio"}

// WriteXLSX writes the leaderboard as a single-sheet workbook.
func WriteXLSX(w io.Writer, board []TeamStats) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, s := range board {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{i + 1, s.Name, s.Wins, s.GamesWon, s.HeadToHeadWins, s.SetsWon, fmt.Sprintf("%.2f", s.PointsRatio)}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// RenderChart draws a PNG bar chart of wins per team.
func RenderChart(board []TeamStats) ([]byte, error) {
	bars := make([]chart.Value, len(board))
	maxWins := 0
	for i, s := range board {
		bars[i] = chart.Value{Label: s.Name, Value: float64(s.Wins)}
		if s.Wins > maxWins {
			maxWins = s.Wins
		}
	}
	if len(bars) == 0 {
		bars = append(bars, chart.Value{Label: "No match data available yet.", Value: 0})
	}

	graph := chart.BarChart{
		Title:    "Wins per team",
		Width:    800,
		Height:   400,
		BarWidth: 40,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxWins + 1)},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
