// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.11.24
//

package goxnav

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteChart renders an HTML line chart of the position error and the
// filter uncertainty per step using go-echarts.
func WriteChart(w io.Writer, recs []StepRecord) error {
	x := make([]string, 0, len(recs))
	errData := make([]opts.LineData, 0, len(recs))
	sigData := make([]opts.LineData, 0, len(recs))
	for _, r := range recs {
		label := fmt.Sprintf("%d", r.Step)
		if r.Event != "" {
			label = fmt.Sprintf("%d (%s)", r.Step, r.Event)
		}
		x = append(x, label)
		errData = append(errData, opts.LineData{Value: r.Err})
		sigData = append(sigData, opts.LineData{Value: r.Sigma})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "XNAV position error",
			Subtitle: fmt.Sprintf("steps=%d", len(recs)),
		}),
	)
	line.SetXAxis(x).
		AddSeries("error [km]", errData).
		AddSeries("sigma [km]", sigData)

	return line.Render(w)
}
