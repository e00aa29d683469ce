package model

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"unique;not null" json:"email"`
	DisplayName  string `json:"display_name"`
	PasswordHash string `gorm:"not null" json:"-"`

	Dreams []Dream `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
