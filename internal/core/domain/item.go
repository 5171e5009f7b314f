package domain

import "time"

// Item is a catalog entry pointing at an external tool. Deleting an item
// cascades removal of its assignments; usage history keeps a nulled item
// reference and is rendered with DeletedItemName.
type Item struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	URL             string    `json:"url"`
	Icon            string    `json:"icon,omitempty"`
	Category        string    `json:"category,omitempty"`
	OpenInNewWindow bool      `json:"open_in_new_window"`
	CreatedAt       time.Time `json:"created_at"`
	CreatedBy       *int64    `json:"created_by,omitempty"`
}

// DeletedItemName is the placeholder shown for usage rows whose item has
// since been removed from the catalog.
const DeletedItemName = "Deleted Item"

// Assignment grants one user visibility of one item. At most one assignment
// exists per (user, item) pair.
type Assignment struct {
	UserID       int64     `json:"user_id"`
	ItemID       int64     `json:"item_id"`
	DisplayOrder int       `json:"display_order"`
	AssignedAt   time.Time `json:"assigned_at"`
}
