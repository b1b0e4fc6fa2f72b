package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"focusdo/internal/model"
)

const (
	keyTasks      = "tasks"
	keyTrash      = "trash"
	keyCategories = "categories"
)

type blobRow struct {
	Key       string `gorm:"primaryKey"`
	Data      []byte
	UpdatedAt time.Time
}

func (blobRow) TableName() string { return "blobs" }

// BlobStore persists the whole collection as encoded blobs under fixed
// keys. A missing or undecodable blob loads as empty state rather than an
// error; the collection is the single writer, so last write simply wins.
type BlobStore struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewBlobStore(db *gorm.DB, log zerolog.Logger) *BlobStore {
	return &BlobStore{
		db:  db,
		log: log.With().Str("component", "storage").Logger(),
	}
}

func (b *BlobStore) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	row := blobRow{Key: key, Data: data, UpdatedAt: time.Now()}
	if err := b.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// load fills v from the blob under key. Absent or undecodable data leaves
// v untouched and returns nil: a fresh install and a corrupt snapshot both
// start empty.
func (b *BlobStore) load(key string, v any) error {
	var row blobRow
	if err := b.db.Where("key = ?", key).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(row.Data, v); err != nil {
		b.log.Warn().Err(err).Str("key", key).Msg("undecodable blob, starting empty")
		return nil
	}
	return nil
}

func (b *BlobStore) SaveTasks(tasks []model.Task) error {
	return b.save(keyTasks, tasks)
}

func (b *BlobStore) LoadTasks() ([]model.Task, error) {
	var tasks []model.Task
	if err := b.load(keyTasks, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (b *BlobStore) SaveTrash(entries []model.TrashEntry) error {
	return b.save(keyTrash, entries)
}

func (b *BlobStore) LoadTrash() ([]model.TrashEntry, error) {
	var entries []model.TrashEntry
	if err := b.load(keyTrash, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (b *BlobStore) SaveCategories(categories []model.Category) error {
	return b.save(keyCategories, categories)
}

func (b *BlobStore) LoadCategories() ([]model.Category, error) {
	var categories []model.Category
	if err := b.load(keyCategories, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
