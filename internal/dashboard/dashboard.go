package dashboard

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/study-booster/backend/internal/models"
)

// Render writes the analytics snapshot as a self-contained HTML dashboard:
// a daily accuracy/volume line chart, a subject bar chart and a difficulty
// pie chart.
func Render(w io.Writer, snapshot models.AnalyticsSnapshot) error {
	page := components.NewPage()
	page.PageTitle = "Study Booster"

	page.AddCharts(
		progressChart(snapshot.DailyProgress),
		subjectChart(snapshot.SubjectDistribution),
		difficultyChart(snapshot.DifficultyDistribution),
	)

	return page.Render(w)
}

func progressChart(progress []models.DailyProgress) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Daily Progress",
			Subtitle: "accuracy and questions answered per day",
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Scale: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	dates := make([]string, 0, len(progress))
	accuracy := make([]opts.LineData, 0, len(progress))
	questions := make([]opts.LineData, 0, len(progress))
	for _, day := range progress {
		dates = append(dates, day.Date)
		accuracy = append(accuracy, opts.LineData{Value: day.Accuracy})
		questions = append(questions, opts.LineData{Value: day.Questions})
	}

	line.SetXAxis(dates).
		AddSeries("Accuracy (%)", accuracy).
		AddSeries("Questions", questions).
		SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}

func subjectChart(distribution map[string]int) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Subjects",
			Subtitle: "attempts per subject in the window",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	subjects := make([]string, 0, len(distribution))
	counts := make([]opts.BarData, 0, len(distribution))
	for subject, count := range distribution {
		subjects = append(subjects, subject)
		counts = append(counts, opts.BarData{Value: count})
	}

	bar.SetXAxis(subjects).AddSeries("Attempts", counts)
	return bar
}

func difficultyChart(distribution map[models.Difficulty]int) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Difficulty Mix"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	items := make([]opts.PieData, 0, len(distribution))
	for _, d := range []models.Difficulty{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard} {
		items = append(items, opts.PieData{
			Name:  string(d),
			Value: distribution[d],
		})
	}

	pie.AddSeries("Attempts", items).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}: {c}",
		}),
	)
	return pie
}
