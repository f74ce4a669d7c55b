package domain

import "time"

// Rating is post-completion feedback from a task owner to the worker
// who performed it. One rating per (task, giver).
type Rating struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	GivenBy   string    `json:"given_by"`
	GivenTo   string    `json:"given_to"`
	Stars     int       `json:"stars"`
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidStars reports whether the stars value is in the 1-5 range.
func (r *Rating) ValidStars() bool {
	return r != nil && r.Stars >= 1 && r.Stars <= 5
}
