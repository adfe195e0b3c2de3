package model

import (
	"time"

	"github.com/google/uuid"
)

// Visit statuses. A visit starts pending; the guide accepts or denies it,
// either side may cancel, and a kept appointment ends finished.
const (
	VisitStatusPending   = "pending"
	VisitStatusAccepted  = "accepted"
	VisitStatusDenied    = "denied"
	VisitStatusCancelled = "cancelled"
	VisitStatusFinished  = "finished"
)

type Visit struct {
	ID        uuid.UUID `db:"id" json:"id"`
	AdvertID  uuid.UUID `db:"advert_id" json:"advert_id"`
	VisitorID uuid.UUID `db:"visitor_id" json:"visitor_id"`
	Status    string    `db:"status" json:"status"`
	When      time.Time `db:"scheduled_at" json:"scheduled_at"`
	// VisitorRate is given by the visitor about the guide, GuideRate by the
	// guide about the visitor. SystemRate is an out-of-band adjustment that
	// supplements GuideRate during aggregation.
	VisitorRate *float64  `db:"visitor_rate" json:"visitor_rate,omitempty"`
	GuideRate   *float64  `db:"guide_rate" json:"guide_rate,omitempty"`
	SystemRate  *float64  `db:"system_rate" json:"system_rate,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// RatedVisit is the projection the rating aggregator works on.
type RatedVisit struct {
	ID          uuid.UUID `db:"id"`
	VisitorID   uuid.UUID `db:"visitor_id"`
	VisitorRate *float64  `db:"visitor_rate"`
	GuideRate   *float64  `db:"guide_rate"`
	SystemRate  *float64  `db:"system_rate"`
}
