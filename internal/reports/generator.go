package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/mfreitas/bariatrack/internal/protocol"
	"github.com/mfreitas/bariatrack/internal/tracker"
)

// Generator renders progress reports over the tracked days.
type Generator struct {
	store           *tracker.Store
	calorieGoalKcal int
	waterGoalMl     int
}

func NewGenerator(store *tracker.Store, calorieGoalKcal, waterGoalMl int) *Generator {
	return &Generator{
		store:           store,
		calorieGoalKcal: calorieGoalKcal,
		waterGoalMl:     waterGoalMl,
	}
}

// GenerateProgress renders the progress report in the given format.
func (g *Generator) GenerateProgress(format string) ([]byte, error) {
	snap := g.store.Snapshot()
	rows := buildRows(snap)

	switch format {
	case FormatPDF:
		return g.generatePDF(snap, rows)
	case FormatCSV:
		return g.generateCSV(rows)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

type dayRow struct {
	Day int
	Log tracker.DailyLog
}

func buildRows(snap tracker.AppState) []dayRow {
	days := make([]int, 0, len(snap.Logs))
	for day := range snap.Logs {
		days = append(days, day)
	}
	sort.Ints(days)

	rows := make([]dayRow, 0, len(days))
	for _, day := range days {
		rows = append(rows, dayRow{Day: day, Log: snap.Logs[day]})
	}
	return rows
}

func (g *Generator) generateCSV(rows []dayRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"day", "weight_kg", "consumed_calories_kcal", "water_intake_ml", "checked_items", "custom_items", "completed"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Day),
			fmt.Sprintf("%.1f", row.Log.Weight),
			strconv.Itoa(row.Log.ConsumedCalories),
			strconv.Itoa(row.Log.WaterIntake),
			strconv.Itoa(len(row.Log.CheckedItems)),
			strconv.Itoa(len(row.Log.CustomItems)),
			strconv.FormatBool(row.Log.IsCompleted),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (g *Generator) generatePDF(snap tracker.AppState, rows []dayRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr("Relatório de Progresso"))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Dia atual: %d de %d", snap.CurrentDay, protocol.TotalDays)))
	pdf.Ln(12)

	summary := calculateSummary(rows)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, tr("Resumo"))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Dias registrados: %d", len(rows))))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Dias concluídos: %d", summary.DaysCompleted)))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Variação de peso: %s", summary.WeightDelta)))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Média de calorias: %s (meta %d kcal)", summary.AvgCalories, g.calorieGoalKcal)))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Média de água: %s (meta %d ml)", summary.AvgWater, g.waterGoalMl)))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, tr("Dias"))
	pdf.Ln(8)

	drawDaysTable(pdf, tr, rows)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

type summary struct {
	DaysCompleted int
	WeightDelta   string
	AvgCalories   string
	AvgWater      string
}

func calculateSummary(rows []dayRow) summary {
	s := summary{
		WeightDelta: "sem dados",
		AvgCalories: "sem dados",
		AvgWater:    "sem dados",
	}
	if len(rows) == 0 {
		return s
	}

	var totalCalories, totalWater int
	for _, row := range rows {
		if row.Log.IsCompleted {
			s.DaysCompleted++
		}
		totalCalories += row.Log.ConsumedCalories
		totalWater += row.Log.WaterIntake
	}

	first := rows[0].Log.Weight
	last := rows[len(rows)-1].Log.Weight
	if first > 0 && last > 0 {
		s.WeightDelta = fmt.Sprintf("%+.1f kg", last-first)
	}

	s.AvgCalories = fmt.Sprintf("%d kcal", totalCalories/len(rows))
	s.AvgWater = fmt.Sprintf("%d ml", totalWater/len(rows))
	return s
}

func drawDaysTable(pdf *gofpdf.Fpdf, tr func(string) string, rows []dayRow) {
	pdf.SetFont("Arial", "B", 8)
	pdf.CellFormat(15, 6, tr("Dia"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, tr("Peso (kg)"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, tr("Calorias (kcal)"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, tr("Água (ml)"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, tr("Itens"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, tr("Concluído"), "1", 0, "C", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, row := range rows {
		completed := "não"
		if row.Log.IsCompleted {
			completed = "sim"
		}
		pdf.CellFormat(15, 6, strconv.Itoa(row.Day), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.1f", row.Log.Weight), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, strconv.Itoa(row.Log.ConsumedCalories), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, strconv.Itoa(row.Log.WaterIntake), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, strconv.Itoa(len(row.Log.CheckedItems)+len(row.Log.CustomItems)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, tr(completed), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}
}
