package apiclient

import (
	"encoding/json"
	"time"
)

// StationStatus is the operational state reported for a station.
type StationStatus string

const (
	StatusOK    StationStatus = "OK"
	StatusWarn  StationStatus = "WARN"
	StatusDelay StationStatus = "DELAY"
)

// Station is a single entry of the live status feed.
type Station struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Status  StationStatus `json:"status"`
	Message string        `json:"message"`
}

// NotificationSchedule selects the weekdays a user wants status notifications.
type NotificationSchedule struct {
	ID        string `json:"id,omitempty"`
	ProfileID string `json:"profileId,omitempty"`
	Monday    bool   `json:"monday"`
	Tuesday   bool   `json:"tuesday"`
	Wednesday bool   `json:"wednesday"`
	Thursday  bool   `json:"thursday"`
	Friday    bool   `json:"friday"`
	Saturday  bool   `json:"saturday"`
	Sunday    bool   `json:"sunday"`
}

// Profile is the user's dashboard profile as returned by the backend.
type Profile struct {
	ID                   string                `json:"id"`
	UserID               string                `json:"userId"`
	Name                 *string               `json:"name,omitempty"`
	NeedsWelcome         bool                  `json:"needsWelcome"`
	FavoriteStations     []string              `json:"favoriteStations"`
	FavoriteLines        []string              `json:"favoriteLines"`
	NotificationSchedule *NotificationSchedule `json:"notificationSchedule,omitempty"`
	CreatedAt            time.Time             `json:"createdAt"`
	UpdatedAt            time.Time             `json:"updatedAt"`
}

// Clone returns a deep copy. Stores hand out and keep copies so callers can
// never mutate confirmed state in place.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Name != nil {
		name := *p.Name
		cp.Name = &name
	}
	if p.FavoriteStations != nil {
		cp.FavoriteStations = append([]string(nil), p.FavoriteStations...)
	}
	if p.FavoriteLines != nil {
		cp.FavoriteLines = append([]string(nil), p.FavoriteLines...)
	}
	if p.NotificationSchedule != nil {
		ns := *p.NotificationSchedule
		cp.NotificationSchedule = &ns
	}
	return &cp
}

// ProfilePatch is a partial profile update for PUT /v1/profile. Only set
// fields appear in the request body: nil pointers and nil slices are
// omitted, while a non-nil empty slice is sent as an empty array so the
// last favorite can actually be removed. Clearing the notification schedule
// requires SetNotificationSchedule=true with a nil schedule, which sends an
// explicit JSON null.
type ProfilePatch struct {
	Name                    *string
	NeedsWelcome            *bool
	FavoriteStations        []string
	FavoriteLines           []string
	NotificationSchedule    *NotificationSchedule
	SetNotificationSchedule bool
}

// MarshalJSON emits only the fields the patch actually carries.
func (p ProfilePatch) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any)
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.NeedsWelcome != nil {
		fields["needsWelcome"] = *p.NeedsWelcome
	}
	if p.FavoriteStations != nil {
		fields["favoriteStations"] = p.FavoriteStations
	}
	if p.FavoriteLines != nil {
		fields["favoriteLines"] = p.FavoriteLines
	}
	if p.SetNotificationSchedule {
		fields["notificationSchedule"] = p.NotificationSchedule
	}
	return json.Marshal(fields)
}

// LoginResult is the response of POST /v1/auth/login.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	UserID      int64  `json:"id"`
}

// RefreshResult is the response of POST /v1/auth/refresh.
type RefreshResult struct {
	AccessToken string `json:"accessToken"`
}
