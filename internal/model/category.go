package model

import "time"

type Category struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Description   *string   `db:"description" json:"description,omitempty"`
	CreatedBy     *int64    `db:"created_by" json:"created_by,omitempty"`
	DocumentCount int       `db:"document_count" json:"document_count"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
