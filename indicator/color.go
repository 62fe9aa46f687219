package indicator

import "github.com/crowdpulse/pulsewatch/model"

// DefaultColor 无法比较时使用的默认颜色
const DefaultColor = model.ColorBlue

// EdgeColor 返回以 points[i] 为终点的线段颜色。
// i 越界（第一个点或超出序列长度）时返回默认颜色；
// 两端都不低于阈值时为蓝色，否则为红色。
func EdgeColor(points []model.RenderPoint, i int, threshold float64) model.Color {
	if i <= 0 || i >= len(points) {
		return DefaultColor
	}
	if points[i-1].Value >= threshold && points[i].Value >= threshold {
		return model.ColorBlue
	}
	return model.ColorRed
}

// EdgeColors colours every rendered edge; edge k joins points k and k+1.
// The leading edge has no predecessor to compare against and keeps the
// default colour.
func EdgeColors(points []model.RenderPoint, threshold float64) []model.Color {
	if len(points) < 2 {
		return []model.Color{}
	}

	colors := make([]model.Color, len(points)-1)
	colors[0] = DefaultColor
	for k := 1; k < len(colors); k++ {
		colors[k] = EdgeColor(points, k+1, threshold)
	}
	return colors
}
