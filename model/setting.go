package model

// Setting is a single durable preference row. Values are small
// serialized blobs, one key per row
type Setting struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"unique;not null"`
	Value []byte `gorm:"type:blob"`
}
