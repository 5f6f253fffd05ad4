// Package chart renders the expense-by-category summary as a PNG pie chart.
package chart

import (
	"errors"
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// Share is one pie slice: a category name and its spend total.
type Share struct {
	Label string
	Value float64
}

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("no expense data to chart")

// WritePie renders shares as a pie chart. Zero-valued shares are dropped;
// slice labels carry the percentage of total spend.
func WritePie(w io.Writer, title string, shares []Share) error {
	var total float64
	for _, s := range shares {
		if s.Value > 0 {
			total += s.Value
		}
	}
	if total == 0 {
		return ErrNoData
	}

	values := make([]gochart.Value, 0, len(shares))
	for _, s := range shares {
		if s.Value <= 0 {
			continue
		}
		values = append(values, gochart.Value{
			Value: s.Value,
			Label: fmt.Sprintf("%s (%.0f%%)", s.Label, s.Value/total*100),
		})
	}

	pie := gochart.PieChart{
		Title:  title,
		Width:  512,
		Height: 512,
		Values: values,
	}
	return pie.Render(gochart.PNG, w)
}
