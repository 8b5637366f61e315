package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is an ordered list of strings stored as JSON text in a single
// column. Scanning never produces a nil slice, so callers can range over it
// without a guard.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to encode string list: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	*l = StringList{}
	if src == nil {
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, l); err != nil {
		return fmt.Errorf("failed to decode string list: %w", err)
	}
	if *l == nil {
		*l = StringList{}
	}
	return nil
}

// Product represents a product in the catalog. Price is stored in minor
// currency units.
type Product struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string     `json:"name" gorm:"index;type:varchar(100)"`
	Company     string     `json:"company" gorm:"index;type:varchar(100)"`
	Description string     `json:"description"`
	Price       int        `json:"price"`
	Image       string     `json:"image"`
	Colors      StringList `json:"colors" gorm:"type:text"`
	Sizes       StringList `json:"sizes" gorm:"type:text"`
	Qty         int        `json:"qty"`
	CategoryID  *string    `json:"category_id" gorm:"type:varchar(36);index"`
	Featured    bool       `json:"featured"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
