package frontier

import (
	"fmt"

	charts "github.com/vicanso/go-charts/v2"
)

// defaultCurveBuckets is the risk-bucket count used when the caller does
// not ask for a specific resolution.
const defaultCurveBuckets = 50

// RenderCurvePNG renders the cloud's upper-left boundary as a PNG line
// chart: risk on the x-axis, best sampled return per risk bucket on the
// y-axis.
func RenderCurvePNG(result *FrontierResult, buckets int, subtitle string) ([]byte, error) {
	if buckets < 1 {
		buckets = defaultCurveBuckets
	}

	curve := result.Curve(buckets)
	if len(curve) == 0 {
		return nil, fmt.Errorf("no curve points to render")
	}

	xLabels := make([]string, len(curve))
	returns := make([]float64, len(curve))
	for i, p := range curve {
		xLabels[i] = fmt.Sprintf("%.3f", p.Risk)
		returns[i] = p.Return
	}

	title := fmt.Sprintf("Efficient Frontier • %d samples", len(result.Samples))

	painter, err := charts.LineRender(
		[][]float64{returns},
		charts.TitleTextOptionFunc(title, subtitle),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        xLabels,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(1000),
		charts.HeightOptionFunc(600),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render frontier chart: %w", err)
	}

	return painter.Bytes()
}
