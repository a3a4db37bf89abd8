package model

import "time"

// Follow is a directed edge in the follow graph: follower watches followed.
type Follow struct {
	FollowerID string    `db:"follower_id" json:"follower_id"`
	FollowedID string    `db:"followed_id" json:"followed_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
