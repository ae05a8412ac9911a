// Package entity defines the domain models for the issues feature.
package entity

import (
	"strconv"
	"time"

	chartentity "coin_backend/internal/feature/charts/domain/entity"
)

const (
	// TypeManual marks an issue authored by an administrator.
	TypeManual = "MANUAL"
	// UnknownAuthor is shown when an issue has no authoring user.
	UnknownAuthor = "Unknown"
)

// Issue is a curated annotation attached to a coin's price chart date.
// Issues are soft-deleted only; once IsDeleted is true it stays true.
type Issue struct {
	ID           uint
	CoinID       uint
	ChartID      *uint
	Chart        *chartentity.Chart // Loaded with the issue when ChartID is set
	Date         time.Time
	Title        string
	Content      string
	NewsTitle    string
	Source       string
	Type         string
	UserID       *int64
	RequestCount int64
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreatedBy returns the authoring user id as text, or UnknownAuthor.
func (i *Issue) CreatedBy() string {
	if i.UserID == nil {
		return UnknownAuthor
	}
	return strconv.FormatInt(*i.UserID, 10)
}

// Update replaces each field whose new value is non-nil and keeps the rest.
func (i *Issue) Update(title, content, newsTitle, source *string) {
	if title != nil {
		i.Title = *title
	}
	if content != nil {
		i.Content = *content
	}
	if newsTitle != nil {
		i.NewsTitle = *newsTitle
	}
	if source != nil {
		i.Source = *source
	}
}

// Delete marks the issue as deleted. Calling it again has no further effect.
func (i *Issue) Delete() {
	i.IsDeleted = true
}

// IsActive reports whether the issue is not deleted.
func (i *Issue) IsActive() bool {
	return !i.IsDeleted
}
