package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/icebreakapp/radar-gateway/internal/domain"
	"github.com/icebreakapp/radar-gateway/internal/usecase/feed"
)

type FeedHandler struct {
	poller *feed.Poller
}

func NewFeedHandler(poller *feed.Poller) *FeedHandler {
	return &FeedHandler{poller: poller}
}

// FeedResponse is the last completed poll cycle. An errored cycle is
// presented like an empty one; the state field still says what happened.
type FeedResponse struct {
	State      domain.FeedState   `json:"state"`
	Candidates []domain.Candidate `json:"candidates"`
	Cycle      uint64             `json:"cycle"`
	UpdatedAt  string             `json:"updated_at,omitempty"`
}

func toFeedResponse(s domain.FeedSnapshot) FeedResponse {
	resp := FeedResponse{
		State:      s.State,
		Candidates: s.Candidates,
		Cycle:      s.Cycle,
	}
	if resp.Candidates == nil {
		resp.Candidates = []domain.Candidate{}
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = s.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}

// GetFeed handles GET /feed
func (h *FeedHandler) GetFeed(c *gin.Context) {
	c.JSON(http.StatusOK, toFeedResponse(h.poller.Snapshot()))
}

// RefreshFeed handles POST /feed/refresh (pull-to-refresh). A cycle
// already in flight makes this a no-op.
func (h *FeedHandler) RefreshFeed(c *gin.Context) {
	h.poller.Refresh()
	c.JSON(http.StatusOK, toFeedResponse(h.poller.Snapshot()))
}
