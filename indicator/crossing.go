package indicator

import "github.com/crowdpulse/pulsewatch/model"

// SyntheticSuffix 合成穿越点标签的后缀，渲染层据此隐藏刻度
const SyntheticSuffix = " | "

// Crossed 判断相邻两值是否位于阈值两侧。
// 使用严格小于判断“低于”，等于阈值视为位于上方，因此仅触碰阈值不会产生穿越。
func Crossed(prev, curr, threshold float64) bool {
	return (prev < threshold) != (curr < threshold)
}

// CrossingRatio 返回穿越点在 prev 与 curr 之间的插值比例。
// 仅在 Crossed 为 true 时调用，此时 curr != prev，比例总是有定义。
func CrossingRatio(prev, curr, threshold float64) float64 {
	return (threshold - prev) / (curr - prev)
}

// Segment 将采样序列转换为渲染点序列，在每次穿越阈值处插入一个合成点。
// 输入参数：
//   - samples: 窗口中的采样（按到达顺序）
//   - threshold: 当前阈值
//
// 返回值：
//   - []model.RenderPoint: 渲染点，最后一个点总是最后一个采样
//
// The synthetic point carries the threshold as its value and the previous
// sample's label tagged with SyntheticSuffix; only the value is interpolated.
func Segment(samples []model.Sample, threshold float64) []model.RenderPoint {
	if len(samples) == 0 {
		return []model.RenderPoint{}
	}

	points := make([]model.RenderPoint, 0, len(samples)*2-1)
	for i := 1; i < len(samples); i++ {
		prev, curr := samples[i-1], samples[i]
		points = append(points, model.RenderPoint{Label: prev.Time, Value: prev.Value})

		if Crossed(prev.Value, curr.Value, threshold) {
			points = append(points, model.RenderPoint{
				Label:     prev.Time + SyntheticSuffix,
				Value:     threshold,
				Synthetic: true,
			})
		}
	}

	last := samples[len(samples)-1]
	return append(points, model.RenderPoint{Label: last.Time, Value: last.Value})
}
