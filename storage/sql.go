package storage

import (
	"errors"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/crowdpulse/pulsewatch/model"
)

// cameraThreshold 阈值表
type cameraThreshold struct {
	Camera    string `gorm:"primaryKey"`
	Threshold float64
	UpdatedAt time.Time
}

// SQL gorm 实现的存储，支持任意 gorm 方言（例如 sqlite）
type SQL struct {
	db *gorm.DB
}

// FromSQL 使用 gorm 方言创建存储并自动迁移表结构
func FromSQL(dialect gorm.Dialector, opts ...gorm.Option) (Storage, error) {
	db, err := gorm.Open(dialect, opts...)
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(&cameraThreshold{}, &model.Event{}); err != nil {
		return nil, err
	}

	return &SQL{db: db}, nil
}

func (s *SQL) SaveThreshold(camera string, value float64) error {
	row := cameraThreshold{Camera: camera, Threshold: value, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "camera"}},
		DoUpdates: clause.AssignmentColumns([]string{"threshold", "updated_at"}),
	}).Create(&row).Error
}

func (s *SQL) Threshold(camera string) (float64, error) {
	var row cameraThreshold
	err := s.db.Where("camera = ?", camera).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return row.Threshold, nil
}

func (s *SQL) CreateEvent(event *model.Event) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return s.db.Create(event).Error
}

func (s *SQL) Events(filters ...EventFilter) ([]*model.Event, error) {
	events := make([]*model.Event, 0)
	if err := s.db.Order("id").Find(&events).Error; err != nil {
		return nil, err
	}

	return lo.Filter(events, func(event *model.Event, _ int) bool {
		return match(*event, filters)
	}), nil
}
