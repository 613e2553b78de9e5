// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stockhawk/internal/feature/watchlist/domain/entity"
	"stockhawk/internal/feature/watchlist/usecase"
)

const (
	settingDisplayMode = "display_mode"
	settingInitialized = "initialized"
)

// WatchedSymbolModel は監視銘柄集合の1要素です。
type WatchedSymbolModel struct {
	ID        uint   `gorm:"primaryKey"`
	Symbol    string `gorm:"size:32;not null;uniqueIndex"`
	CreatedAt time.Time
}

func (WatchedSymbolModel) TableName() string { return "watched_symbols" }

// SettingModel はキー/値形式の設定です。
type SettingModel struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value string `gorm:"size:255;not null"`
}

func (SettingModel) TableName() string { return "settings" }

// Models は AutoMigrate 対象のモデル一覧を返します。
func Models() []any {
	return []any{&WatchedSymbolModel{}, &SettingModel{}}
}

// preferenceGorm はPreferenceRepositoryインターフェースのGORM実装です。
type preferenceGorm struct {
	db *gorm.DB
}

var _ usecase.PreferenceRepository = (*preferenceGorm)(nil)

// NewPreferenceRepository は指定されたDB接続でpreferenceGormリポジトリの新しいインスタンスを生成します。
func NewPreferenceRepository(db *gorm.DB) *preferenceGorm {
	return &preferenceGorm{db: db}
}

// Symbols は監視銘柄をシンボル昇順で返します。
func (r *preferenceGorm) Symbols(ctx context.Context) ([]string, error) {
	symbols := []string{}
	if err := r.db.WithContext(ctx).
		Model(&WatchedSymbolModel{}).
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// AddSymbol は銘柄を追加します。既存の場合は何もしません。
func (r *preferenceGorm) AddSymbol(ctx context.Context, symbol string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "symbol"}}, DoNothing: true}).
		Create(&WatchedSymbolModel{Symbol: symbol}).Error
}

func (r *preferenceGorm) RemoveSymbol(ctx context.Context, symbol string) error {
	return r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Delete(&WatchedSymbolModel{}).Error
}

func (r *preferenceGorm) DisplayMode(ctx context.Context) (entity.DisplayMode, error) {
	v, ok, err := r.getSetting(ctx, settingDisplayMode)
	if err != nil {
		return "", err
	}
	if !ok {
		return entity.DefaultDisplayMode, nil
	}
	return entity.ParseDisplayMode(v)
}

func (r *preferenceGorm) SetDisplayMode(ctx context.Context, mode entity.DisplayMode) error {
	return r.putSetting(ctx, settingDisplayMode, mode.String())
}

func (r *preferenceGorm) Initialized(ctx context.Context) (bool, error) {
	v, ok, err := r.getSetting(ctx, settingInitialized)
	if err != nil || !ok {
		return false, err
	}
	return strconv.ParseBool(v)
}

func (r *preferenceGorm) MarkInitialized(ctx context.Context) error {
	return r.putSetting(ctx, settingInitialized, "true")
}

func (r *preferenceGorm) getSetting(ctx context.Context, key string) (string, bool, error) {
	// First は未設定のたびに "record not found" をログ出力するため Find を使う
	var rows []SettingModel
	if err := r.db.WithContext(ctx).Where("name = ?", key).Limit(1).Find(&rows).Error; err != nil {
		return "", false, err
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	return rows[0].Value, true, nil
}

func (r *preferenceGorm) putSetting(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&SettingModel{Name: key, Value: value}).Error
}
