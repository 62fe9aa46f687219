package indicator

import (
	"fmt"

	"github.com/markcheno/go-talib"
	"github.com/samber/lo"

	"github.com/crowdpulse/pulsewatch/model"
	"github.com/crowdpulse/pulsewatch/plot"
)

// Average 滚动平均线，叠加在采样曲线上
func Average(period int, color string) plot.Indicator {
	return &average{
		Period: period,
		Color:  color,
	}
}

type average struct {
	Period int                   // 周期长度
	Color  string                // 图表中的颜色
	Values model.Series[float64] // 平均值序列
	Labels []string              // 与平均值对应的采样标签
}

func (a average) Warmup() int {
	return a.Period
}

func (a average) Name() string {
	return fmt.Sprintf("SMA(%d)", a.Period)
}

func (a average) Overlay() bool {
	return true
}

// Load 计算简单移动平均，丢弃预热期的数据
func (a *average) Load(samples []model.Sample) {
	if a.Period < 1 || len(samples) < a.Period {
		a.Values, a.Labels = nil, nil
		return
	}

	values := lo.Map(samples, func(sample model.Sample, _ int) float64 { return sample.Value })
	warmup := a.Period - 1
	a.Values = talib.Sma(values, a.Period)[warmup:]
	a.Labels = lo.Map(samples[warmup:], func(sample model.Sample, _ int) string { return sample.Time })
}

func (a average) Metrics() []plot.IndicatorMetric {
	return []plot.IndicatorMetric{
		{
			Name:   a.Name(),
			Style:  "line",
			Color:  a.Color,
			Values: a.Values,
			Labels: a.Labels,
		},
	}
}
