package expense

import "time"

// Expense is the SQL row. The mongo store keeps its own document type
// because its identifiers are ObjectIDs.
type Expense struct {
	ID       string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Title    string    `gorm:"column:title;not null"`
	Amount   float64   `gorm:"column:amount;not null"`
	Category string    `gorm:"column:category;not null;default:Other"`
	Date     time.Time `gorm:"column:date;not null;index"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}
