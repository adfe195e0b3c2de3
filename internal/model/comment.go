package model

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	AdvertID  uuid.UUID  `db:"advert_id" json:"advert_id"`
	OwnerID   uuid.UUID  `db:"owner_id" json:"owner_id"`
	Content   string     `db:"content" json:"content"`
	LikedBy   StringList `db:"liked_by" json:"liked_by"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// Likes returns the like count for serialization convenience.
func (c *Comment) Likes() int { return len(c.LikedBy) }
