package diagnose

import (
	"context"
	"fmt"
	"time"

	"github.com/agromarket/agromarket-go/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeaturePlantAnalysis is the history bucket for disease analyses.
const FeaturePlantAnalysis = "plant_analysis"

// HistoryEntry is one locally cached analysis. Entries are scoped per
// (role, feature) so a user who is both farmer and expert keeps separate
// histories, mirroring how the server scopes its copies.
type HistoryEntry struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Role      string    `gorm:"size:32;index:idx_history_scope" json:"-"`
	Feature   string    `gorm:"size:64;index:idx_history_scope" json:"-"`
	Date      time.Time `json:"date"`
	Condition string    `json:"condition"`
	Severity  string    `json:"severity"`
	Treatment []string  `gorm:"serializer:json" json:"treatment"`
	Image     string    `json:"image,omitempty"`
}

func (HistoryEntry) TableName() string { return "analysis_history" }

// History is the offline analysis cache. It shares the durable client
// database with the session store.
type History struct {
	db    *gorm.DB
	nowFn func() time.Time
}

func NewHistory(db *gorm.DB) (*History, error) {
	if err := db.AutoMigrate(&HistoryEntry{}); err != nil {
		return nil, fmt.Errorf("migrate analysis history: %w", err)
	}
	return &History{db: db, nowFn: time.Now}, nil
}

// Append stores a new entry and returns it with its assigned id.
func (h *History) Append(ctx context.Context, role domain.Role, feature string, entry HistoryEntry) (*HistoryEntry, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	entry.ID = uuid.NewString()
	entry.Role = string(role)
	entry.Feature = feature
	if entry.Date.IsZero() {
		entry.Date = h.nowFn().UTC()
	}
	if err := h.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("save analysis: %w", err)
	}
	return &entry, nil
}

// List returns the scope's entries, newest first.
func (h *History) List(ctx context.Context, role domain.Role, feature string) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := h.db.WithContext(ctx).
		Where("role = ? AND feature = ?", string(role), feature).
		Order("date DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	return entries, nil
}

// Delete removes a single entry. Deleting an id that is absent or belongs
// to another scope is a no-op.
func (h *History) Delete(ctx context.Context, role domain.Role, feature, id string) error {
	return h.db.WithContext(ctx).
		Where("role = ? AND feature = ? AND id = ?", string(role), feature, id).
		Delete(&HistoryEntry{}).Error
}

// Clear drops every entry in the scope.
func (h *History) Clear(ctx context.Context, role domain.Role, feature string) error {
	return h.db.WithContext(ctx).
		Where("role = ? AND feature = ?", string(role), feature).
		Delete(&HistoryEntry{}).Error
}
