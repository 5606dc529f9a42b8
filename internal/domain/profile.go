package domain

import (
	"math"
	"time"
)

// Display defaults for profile fields the owner never filled in.
const (
	DefaultName      = "Unknown"
	DefaultBio       = "IceBreak user"
	DefaultAvatarURL = "https://i.pravatar.cc/150"
)

type Profile struct {
	ID           string   `json:"id" db:"id"`
	Name         *string  `json:"name" db:"name"`
	Bio          *string  `json:"bio" db:"bio"`
	AvatarURL    *string  `json:"avatar_url" db:"avatar_url"`
	RadarEnabled bool     `json:"radar_enabled" db:"radar_enabled"`
	Interests    []string `json:"interests"`
}

func (p *Profile) DisplayName() string {
	if p.Name != nil && *p.Name != "" {
		return *p.Name
	}
	return DefaultName
}

func (p *Profile) DisplayBio() string {
	if p.Bio != nil && *p.Bio != "" {
		return *p.Bio
	}
	return DefaultBio
}

func (p *Profile) DisplayAvatarURL() string {
	if p.AvatarURL != nil && *p.AvatarURL != "" {
		return *p.AvatarURL
	}
	return DefaultAvatarURL
}

// UserLocation is the single live location row kept per user on the
// platform. Each report overwrites the previous one.
type UserLocation struct {
	UserID    string    `json:"user_id" db:"user_id"`
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RadarPreference gates both directions of visibility: whether the user
// reports a location and whether they appear in other users' feeds.
type RadarPreference struct {
	UserID       string `json:"user_id" db:"user_id"`
	RadarEnabled bool   `json:"radar_enabled" db:"radar_enabled"`
}

// NearbyUser is one row returned by the platform's geospatial procedure.
type NearbyUser struct {
	UserID         string  `json:"user_id" db:"user_id"`
	DistanceMeters float64 `json:"distance_m" db:"distance_m"`
}

// Candidate is a nearby user enriched into a displayable feed entry.
// Rebuilt wholesale on every poll cycle, never persisted.
type Candidate struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Bio             string   `json:"bio"`
	AvatarURL       string   `json:"avatar_url"`
	DistanceMeters  int      `json:"distance_m"`
	Interests       []string `json:"interests"`
	CommonInterests []string `json:"common_interests"`
	OtherInterests  []string `json:"other_interests"`
}

// RoundDistance converts a raw procedure distance to whole metres.
// Rounding happens once, when the candidate is built.
func RoundDistance(meters float64) int {
	return int(math.Round(meters))
}
