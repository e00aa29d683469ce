// Package model defines database models
package model

type Dream struct {
	ID     uint `gorm:"primaryKey;autoIncrement;index" json:"id"`
	UserID uint `gorm:"not null" json:"user_id"`

	Title   string `json:"title"`
	Content string `json:"content"`

	// Full ordered emotion list as returned by the classifier,
	// serialized to JSON in the database
	Mood MoodScores `gorm:"type:text" json:"mood"`

	// Either a local file path (downloaded or generated image) or a
	// remote URL when the image lives in S3
	ImageRef string `json:"image_ref"`

	// Unix millisecond timestamp
	CreatedAt int64 `gorm:"not null" json:"created_at"`
}
