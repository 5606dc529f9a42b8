package domain

import "time"

// FeedState is the per-screen feed lifecycle. Errored is visible to API
// consumers but carries no candidates; the next poll always retries.
type FeedState string

const (
	FeedStateIdle      FeedState = "idle"
	FeedStateLoading   FeedState = "loading"
	FeedStatePopulated FeedState = "populated"
	FeedStateEmpty     FeedState = "empty"
	FeedStateErrored   FeedState = "errored"
)

// FeedSnapshot is the result of one completed poll cycle.
type FeedSnapshot struct {
	State      FeedState   `json:"state"`
	Candidates []Candidate `json:"candidates"`
	Cycle      uint64      `json:"cycle"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
