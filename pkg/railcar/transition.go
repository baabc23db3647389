package railcar

import "time"

// StatusTransition is an archive row recorded in Postgres whenever the
// refresh cycle moves a train to a different status.
type StatusTransition struct {
	ID uint `gorm:"primarykey"`

	TrainID string `gorm:"index"`

	FromStatus TrainStatus
	ToStatus   TrainStatus

	CurrentService string

	RecordedAt time.Time
}
