package download

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/xhit/go-str2duration/v2"

	"github.com/crowdpulse/pulsewatch/model"
	"github.com/crowdpulse/pulsewatch/service"
	"github.com/crowdpulse/pulsewatch/source"
	"github.com/crowdpulse/pulsewatch/tools/log"
)

// 从监控后端录制采样并保存到 CSV 文件中，录制的文件可以用 replay 回放。

// Downloader 从后端录制一个摄像头的采样
type Downloader struct {
	feeder service.Feeder
}

func NewDownloader(feeder service.Feeder) Downloader {
	return Downloader{
		feeder: feeder,
	}
}

// Parameters 录制参数
type Parameters struct {
	Interval time.Duration // 轮询间隔
	History  bool          // 是否先写入后端保留的历史数据
}

type Option func(*Parameters)

// WithPollInterval 设置录制时的轮询间隔
func WithPollInterval(interval time.Duration) Option {
	return func(parameters *Parameters) {
		parameters.Interval = interval
	}
}

// WithoutHistory 只录制新的采样
func WithoutHistory() Option {
	return func(parameters *Parameters) {
		parameters.History = false
	}
}

// samplesCount 计算给定时长内预计的轮询次数
func samplesCount(duration string, interval time.Duration) (int, time.Duration, error) {
	total, err := str2duration.ParseDuration(duration)
	if err != nil {
		return 0, 0, err
	}
	if total <= 0 {
		return 0, 0, fmt.Errorf("invalid duration: %s", duration)
	}
	return int(total / interval), total, nil
}

// Download records samples of camera for duration (e.g. "30m", "1d") into output.
// Consecutive samples with the same label are written once.
func (d Downloader) Download(ctx context.Context, camera, duration, output string, options ...Option) error {
	parameters := &Parameters{
		Interval: model.DefaultPollInterval,
		History:  true,
	}
	for _, option := range options {
		option(parameters)
	}

	expected, total, err := samplesCount(duration, parameters.Interval)
	if err != nil {
		return err
	}

	recordFile, err := os.Create(output)
	if err != nil {
		return err
	}
	defer recordFile.Close()

	writer := csv.NewWriter(recordFile)
	if err = writer.Write([]string{"timestamp", "value"}); err != nil {
		return err
	}

	var (
		last    string
		written int
	)
	write := func(sample model.Sample) error {
		if written > 0 && sample.Time == last {
			return nil
		}
		last = sample.Time
		written++
		return writer.Write([]string{sample.Time, fmt.Sprintf("%g", sample.Value)})
	}

	if parameters.History {
		history, err := d.feeder.History(ctx, camera)
		if err != nil {
			return err
		}
		for _, sample := range history {
			if err := write(sample); err != nil {
				return err
			}
		}
		log.Infof("%d samples of history for %s", len(history), camera)
	}

	log.Infof("Recording %s of %s (~%d samples)", total, camera, expected)
	progressBar := progressbar.Default(int64(expected))

	ctx, cancel := context.WithTimeout(ctx, total)
	defer cancel()

	poller := source.NewPoller(d.feeder, camera, parameters.Interval)
	err = poller.Run(ctx, func(sample model.Sample) error {
		if err := progressBar.Add(1); err != nil {
			log.Warnf("update progresbar fail: %s", err.Error())
		}
		return write(sample)
	})
	if err != nil {
		return err
	}

	if err = progressBar.Close(); err != nil {
		log.Warnf("close progresbar fail: %s", err.Error())
	}

	if skipped := poller.Skipped(); skipped > 0 {
		log.Warnf("%d polls skipped, the backend answered slower than %s", skipped, parameters.Interval)
	}

	writer.Flush()
	log.Infof("Done! %d samples written to %s", written, output)
	return writer.Error()
}
