// Package repository persists scraped tables and auxiliary sources.
package repository

import (
	"context"

	"github.com/okian/laglens/internal/domain/dataset"
	"github.com/okian/laglens/internal/domain/model"
)

// LeadingColumns open every player-season table file, in order.
var LeadingColumns = []string{"PLAYER_ID", "PLAYER", "SEASON", "TEAM", "POSITION", "AGE"}

// Store provides read/write access to persisted tables.
type Store interface {
	// SaveTable writes t under t.Name, replacing any previous content.
	SaveTable(ctx context.Context, t model.Table) error

	// LoadTable reads a player-season table.
	// Returns ErrNotFound if no table with that name exists.
	LoadTable(ctx context.Context, name string) (model.Table, error)

	// LoadRecords reads an auxiliary table as header-keyed string records.
	// Returns ErrNotFound if no table with that name exists.
	LoadRecords(ctx context.Context, name string) ([]dataset.Record, error)

	// Exists reports whether a table with that name is stored.
	Exists(ctx context.Context, name string) bool
}
