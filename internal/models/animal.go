package models

import "time"

// Animal is the patient described by a case.
type Animal struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AnimalType string    `gorm:"size:100;not null" json:"animal_type"`
	Age        int       `json:"age"`
	Weight     float64   `json:"weight"`
	Location   string    `gorm:"size:255;index" json:"location"`
	CreatedAt  time.Time `json:"created_at"`
}
