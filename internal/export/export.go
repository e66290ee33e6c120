// Package export renders a weather snapshot as JSON, CSV, or PDF.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/saiprannav/weatherdesk/internal/models"
)

// Data is the snapshot handed to every format.
type Data struct {
	Location  string                 `json:"location"`
	Current   *models.CurrentWeather `json:"current_weather,omitempty"`
	Forecast  []models.DailyForecast `json:"forecast,omitempty"`
	Generated time.Time              `json:"generated"`
}

// JSON writes the snapshot as indented JSON.
func JSON(w io.Writer, data Data) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding export json: %w", err)
	}
	return nil
}

// CSV writes the snapshot as label/value rows for the current conditions,
// a blank line, then a forecast table.
func CSV(w io.Writer, data Data) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"Location", data.Location},
		{"Generated", data.Generated.Format(time.RFC3339)},
	}
	if cur := data.Current; cur != nil {
		rows = append(rows,
			[]string{"Temperature", formatFloat(cur.Temperature)},
			[]string{"Feels Like", formatFloat(cur.FeelsLike)},
			[]string{"Humidity", strconv.Itoa(cur.Humidity) + "%"},
			[]string{"Wind Speed", formatFloat(cur.WindSpeed)},
			[]string{"Condition", cur.Condition},
		)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing export csv: %w", err)
	}

	if len(data.Forecast) == 0 {
		cw.Flush()
		return cw.Error()
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("writing export csv: %w", err)
	}

	forecastRows := [][]string{{"Date", "Min", "Max", "Avg", "Condition", "Precip"}}
	for _, day := range data.Forecast {
		forecastRows = append(forecastRows, []string{
			day.Date.Format("2006-01-02"),
			formatFloat(day.TempMin),
			formatFloat(day.TempMax),
			formatFloat(day.TempAvg),
			day.Condition,
			fmt.Sprintf("%.0f%%", day.PrecipProb*100),
		})
	}
	if err := cw.WriteAll(forecastRows); err != nil {
		return fmt.Errorf("writing export csv: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// PDF writes the snapshot as a one-page report.
func PDF(w io.Writer, data Data) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Weather Report: "+data.Location)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, "Generated "+data.Generated.Format("January 02, 2006 15:04 MST"))
	pdf.Ln(12)

	if cur := data.Current; cur != nil {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Current Conditions")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pairs := [][2]string{
			{"Temperature", formatFloat(cur.Temperature)},
			{"Feels Like", formatFloat(cur.FeelsLike)},
			{"Humidity", strconv.Itoa(cur.Humidity) + "%"},
			{"Wind Speed", formatFloat(cur.WindSpeed)},
			{"Condition", cur.Condition},
		}
		for _, p := range pairs {
			pdf.CellFormat(40, 7, p[0], "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 7, p[1], "", 1, "L", false, 0, "")
		}
		pdf.Ln(6)
	}

	if len(data.Forecast) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Forecast")
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "B", 10)
		widths := []float64{30, 20, 20, 20, 60, 20}
		headers := []string{"Date", "Min", "Max", "Avg", "Condition", "Precip"}
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 10)
		for _, day := range data.Forecast {
			cells := []string{
				day.Date.Format("2006-01-02"),
				formatFloat(day.TempMin),
				formatFloat(day.TempMax),
				formatFloat(day.TempAvg),
				day.Condition,
				fmt.Sprintf("%.0f%%", day.PrecipProb*100),
			}
			for i, c := range cells {
				pdf.CellFormat(widths[i], 7, c, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing export pdf: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
