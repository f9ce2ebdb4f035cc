package domain

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// App represents an administered application that owns clients
type App struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Active      bool       `json:"active"`
	Cursor      int64      `json:"cursor"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// NewApp creates a new active application
func NewApp(name, description string) *App {
	now := time.Now().UTC()
	return &App{
		ID:          ulid.Make().String(),
		Name:        name,
		Description: description,
		Active:      true,
		Cursor:      now.UnixMicro(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Touch refreshes the modification timestamp and the derived cursor
func (a *App) Touch() {
	a.UpdatedAt = time.Now().UTC()
	a.Cursor = a.UpdatedAt.UnixMicro()
}

// SoftDelete marks the application deleted without removing the row
func (a *App) SoftDelete() {
	now := time.Now().UTC()
	a.DeletedAt = &now
	a.Active = false
	a.UpdatedAt = now
	a.Cursor = now.UnixMicro()
}

// IsDeleted reports whether the application is soft-deleted
func (a *App) IsDeleted() bool {
	return a.DeletedAt != nil
}

// GetCursor implements HasCursor
func (a *App) GetCursor() int64 {
	return a.Cursor
}
