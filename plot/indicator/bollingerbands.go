package indicator

import (
	"fmt"

	"github.com/markcheno/go-talib"
	"github.com/samber/lo"

	"github.com/crowdpulse/pulsewatch/model"
	"github.com/crowdpulse/pulsewatch/plot"
)

// BollingerBands 返回一个布林带指标对象，显示参与度围绕均值的波动范围
func BollingerBands(period int, stdDeviation float64, upDnBandColor, midBandColor string) plot.Indicator {
	return &bollingerBands{
		Period:        period,
		StdDeviation:  stdDeviation,
		UpDnBandColor: upDnBandColor,
		MidBandColor:  midBandColor,
	}
}

type bollingerBands struct {
	Period        int
	StdDeviation  float64
	UpDnBandColor string
	MidBandColor  string
	UpperBand     model.Series[float64]
	MiddleBand    model.Series[float64]
	LowerBand     model.Series[float64]
	Labels        []string
}

func (bb bollingerBands) Warmup() int {
	return bb.Period
}

// Name 格式为"BB(周期, 标准差)"
func (bb bollingerBands) Name() string {
	return fmt.Sprintf("BB(%d, %.2f)", bb.Period, bb.StdDeviation)
}

func (bb bollingerBands) Overlay() bool {
	return true
}

// Load 使用 talib 计算上轨、中轨和下轨，预热期之前的数据被丢弃
func (bb *bollingerBands) Load(samples []model.Sample) {
	if bb.Period < 2 || len(samples) < bb.Period {
		bb.UpperBand, bb.MiddleBand, bb.LowerBand, bb.Labels = nil, nil, nil, nil
		return
	}

	values := lo.Map(samples, func(sample model.Sample, _ int) float64 { return sample.Value })
	upper, mid, lower := talib.BBands(values, bb.Period, bb.StdDeviation, bb.StdDeviation, talib.SMA)

	warmup := bb.Period - 1
	bb.UpperBand, bb.MiddleBand, bb.LowerBand = upper[warmup:], mid[warmup:], lower[warmup:]
	bb.Labels = lo.Map(samples[warmup:], func(sample model.Sample, _ int) string { return sample.Time })
}

func (bb bollingerBands) Metrics() []plot.IndicatorMetric {
	return []plot.IndicatorMetric{
		{
			Name:   "BB upper",
			Style:  "line",
			Color:  bb.UpDnBandColor, // 上下轨相同颜色
			Values: bb.UpperBand,
			Labels: bb.Labels,
		},
		{
			Name:   bb.Name(),
			Style:  "line",
			Color:  bb.MidBandColor,
			Values: bb.MiddleBand,
			Labels: bb.Labels,
		},
		{
			Name:   "BB lower",
			Style:  "line",
			Color:  bb.UpDnBandColor,
			Values: bb.LowerBand,
			Labels: bb.Labels,
		},
	}
}
