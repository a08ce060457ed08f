package entities

// Redirect sends requests for a page of the previous website to its new
// location.
type Redirect struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	OldPath string `gorm:"size:200;uniqueIndex;not null" json:"old_path"`
	NewPath string `gorm:"size:200;not null" json:"new_path"`

	Timestamp
}
