package models

import (
	"encoding/json"
	"time"
)

// Backup is an audit snapshot written around every export and import.
type Backup struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ExportData is the interchange format produced by export and consumed by
// import. Field names are part of the file format.
type ExportData struct {
	Activities []Activity `json:"activities"`
	Expenses   []Expense  `json:"expenses"`
	Goals      []Goal     `json:"goals"`
	Devices    []Device   `json:"devices"`
	ExportDate time.Time  `json:"exportDate"`
}
