package indicator

import "github.com/crowdpulse/pulsewatch/model"

// Classify 根据窗口滚动平均值与阈值边带 [threshold-band, threshold+band] 的关系进行分类。
// 空序列没有分类，ok 为 false，且不会计算平均值。
func Classify(values model.Series[float64], threshold, band float64) (category model.EventCategory, ok bool) {
	if values.Length() == 0 {
		return "", false
	}

	average := model.Mean(values)
	switch {
	case average < threshold-band:
		return model.EventBelow, true
	case average > threshold+band:
		return model.EventAbove, true
	default:
		return model.EventWithin, true
	}
}
