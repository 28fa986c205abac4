package models

// Execution maps to the `executions` table. One row per recurring posting
// rule: post about Topic every day at ExecutionTime (HH:MM, local time).
type Execution struct {
	ID            uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ExecutionTime string `gorm:"column:execution_time;size:5" json:"executionTime"`
	Topic         string `gorm:"column:topic;size:30" json:"topic"`
	Enabled       bool   `gorm:"column:enabled;default:false" json:"enabled"`
	UserID        uint   `gorm:"column:user_id;index" json:"userId"`
}

func (Execution) TableName() string {
	return "executions"
}
