package pulsewatch

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"

	"github.com/crowdpulse/pulsewatch/model"
	"github.com/crowdpulse/pulsewatch/tools/metrics"
)

var summaryCategories = []model.EventCategory{model.EventBelow, model.EventWithin, model.EventAbove}

func writeSummary(w io.Writer, camera string, threshold, band float64, values []float64,
	counts map[model.EventCategory]int) error {

	stats := metrics.Summarize(values)

	buffer := bytes.NewBuffer(nil)
	table := tablewriter.NewWriter(buffer)
	table.SetHeader([]string{"Camera", "Samples", "Mean", "Std", "Min", "P50", "P90", "Max", "Threshold", "% Above"})
	table.SetFooterAlignment(tablewriter.ALIGN_RIGHT)
	table.Append([]string{
		camera,
		strconv.Itoa(stats.Count),
		fmt.Sprintf("%.1f", stats.Mean),
		fmt.Sprintf("%.1f", stats.StdDev),
		fmt.Sprintf("%.1f", stats.Min),
		fmt.Sprintf("%.1f", stats.P50),
		fmt.Sprintf("%.1f", stats.P90),
		fmt.Sprintf("%.1f", stats.Max),
		fmt.Sprintf("%.0f ± %.0f", threshold, band),
		fmt.Sprintf("%.1f %%", metrics.TimeAbove(values, threshold)*100),
	})
	table.Render()

	events := tablewriter.NewWriter(buffer)
	events.SetHeader([]string{"Event", "Count"})
	total := 0
	for _, category := range summaryCategories {
		events.Append([]string{category.Mood(), strconv.Itoa(counts[category])})
		total += counts[category]
	}
	events.SetFooter([]string{"TOTAL", strconv.Itoa(total)})
	events.Render()

	if _, err := fmt.Fprintln(w, buffer.String()); err != nil {
		return err
	}

	// 直方图需要至少一个采样
	if len(values) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w, "------ ENGAGEMENT -------"); err != nil {
		return err
	}
	hist := histogram.Hist(10, values)
	if err := histogram.Fprint(w, hist, histogram.Linear(10)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
