package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tidwall/buntdb"

	"github.com/crowdpulse/pulsewatch/model"
)

const (
	thresholdPrefix = "threshold:"
	eventPrefix     = "event:"
	eventSequence   = "sequence:event"
)

// Bunt buntdb 实现的存储
type Bunt struct {
	db *buntdb.DB
}

// FromMemory 创建一个内存中的存储，进程退出后数据丢失
func FromMemory() (Storage, error) {
	return newBunt(":memory:")
}

// FromFile 使用本地文件作为存储
func FromFile(file string) (Storage, error) {
	return newBunt(file)
}

func newBunt(path string) (*Bunt, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Bunt{db: db}, nil
}

// SaveThreshold 保存摄像头的阈值
func (b *Bunt) SaveThreshold(camera string, value float64) error {
	return b.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(thresholdPrefix+camera, strconv.FormatFloat(value, 'f', -1, 64), nil)
		return err
	})
}

// Threshold 读取摄像头的阈值，不存在时返回 ErrNotFound
func (b *Bunt) Threshold(camera string) (float64, error) {
	var value float64
	err := b.db.View(func(tx *buntdb.Tx) error {
		raw, err := tx.Get(thresholdPrefix + camera)
		if err != nil {
			if errors.Is(err, buntdb.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		value, err = strconv.ParseFloat(raw, 64)
		return err
	})
	return value, err
}

// CreateEvent 保存一个新事件并为其分配自增 ID
func (b *Bunt) CreateEvent(event *model.Event) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	return b.db.Update(func(tx *buntdb.Tx) error {
		var last int64
		raw, err := tx.Get(eventSequence)
		if err != nil && !errors.Is(err, buntdb.ErrNotFound) {
			return err
		}
		if raw != "" {
			if last, err = strconv.ParseInt(raw, 10, 64); err != nil {
				return err
			}
		}

		event.ID = last + 1
		content, err := json.Marshal(event)
		if err != nil {
			return err
		}

		if _, _, err = tx.Set(eventSequence, strconv.FormatInt(event.ID, 10), nil); err != nil {
			return err
		}
		_, _, err = tx.Set(fmt.Sprintf("%s%020d", eventPrefix, event.ID), string(content), nil)
		return err
	})
}

// Events 按创建顺序返回满足所有过滤条件的事件
func (b *Bunt) Events(filters ...EventFilter) ([]*model.Event, error) {
	events := make([]*model.Event, 0)
	err := b.db.View(func(tx *buntdb.Tx) error {
		var decodeErr error
		err := tx.AscendKeys(eventPrefix+"*", func(_, value string) bool {
			var event model.Event
			if decodeErr = json.Unmarshal([]byte(value), &event); decodeErr != nil {
				return false
			}
			if match(event, filters) {
				events = append(events, &event)
			}
			return true
		})
		if err != nil {
			return err
		}
		return decodeErr
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
