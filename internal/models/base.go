package models

import "time"

// Record contains the bookkeeping columns shared by ledger tables. Ledger
// rows are append-only, so there is no update or soft-delete column.
type Record struct {
	Seq       uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	CreatedAt time.Time `json:"-"`
}
