package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/samber/lo"

	"github.com/crowdpulse/pulsewatch/model"
)

var ErrExhausted = errors.New("csv feed exhausted")

// CSV 从 CSV 文件回放已记录的采样
type CSV struct {
	mu      sync.Mutex
	samples map[string][]model.Sample // 摄像头 -> 采样
	cursor  map[string]int
}

// parseHeaders 用于解析 CSV 文件的表头，没有表头时使用默认列顺序
func parseHeaders(headers []string) (index map[string]int, ok bool) {
	headerMap := map[string]int{
		"timestamp": 0, "value": 1, "camera": -1,
	}

	if len(headers) > 1 {
		if _, err := strconv.ParseFloat(headers[1], 64); err == nil {
			return headerMap, false
		}
	}

	for index, h := range headers {
		headerMap[h] = index
	}
	return headerMap, true
}

// NewCSV 读取 CSV 文件。支持的列：timestamp, value 以及可选的 camera。
// 没有 camera 列时，所有采样属于 defaultCamera。
func NewCSV(file, defaultCamera string) (*CSV, error) {
	csvFile, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer csvFile.Close()

	return ReadCSV(csvFile, defaultCamera)
}

// ReadCSV 从 reader 中读取采样
func ReadCSV(reader io.Reader, defaultCamera string) (*CSV, error) {
	lines, err := csv.NewReader(reader).ReadAll()
	if err != nil {
		return nil, err
	}

	feed := &CSV{
		samples: make(map[string][]model.Sample),
		cursor:  make(map[string]int),
	}
	if len(lines) == 0 {
		return feed, nil
	}

	headerMap, hasHeaders := parseHeaders(lines[0])
	if hasHeaders {
		lines = lines[1:]
	}

	for i, line := range lines {
		if len(line) <= headerMap["value"] || len(line) <= headerMap["timestamp"] {
			return nil, fmt.Errorf("line %d: expected at least %d columns, got %d",
				i+1, max(headerMap["value"], headerMap["timestamp"])+1, len(line))
		}

		value, err := strconv.ParseFloat(line[headerMap["value"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		sample := model.Sample{Time: line[headerMap["timestamp"]], Value: value}
		if !sample.Finite() {
			return nil, fmt.Errorf("line %d: %w", i+1, model.ErrInvalidSample)
		}

		camera := defaultCamera
		if column := headerMap["camera"]; column >= 0 && column < len(line) {
			camera = line[column]
		}
		feed.samples[camera] = append(feed.samples[camera], sample)
	}

	return feed, nil
}

// Cameras 返回文件中出现的摄像头
func (c *CSV) Cameras() []string {
	return lo.Keys(c.samples)
}

// Samples 返回摄像头的全部采样
func (c *CSV) Samples(camera string) []model.Sample {
	return append([]model.Sample(nil), c.samples[camera]...)
}

// History 回放开始时没有历史数据
func (c *CSV) History(_ context.Context, _ string) ([]model.Sample, error) {
	return nil, nil
}

// LatestSample 每次调用返回下一条采样，直到文件结束
func (c *CSV) LatestSample(_ context.Context, camera string) (model.Sample, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	position := c.cursor[camera]
	if position >= len(c.samples[camera]) {
		return model.Sample{}, ErrExhausted
	}
	c.cursor[camera] = position + 1
	return c.samples[camera][position], nil
}
