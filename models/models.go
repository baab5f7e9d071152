package models

import "time"

type AttendanceStatus string

const (
	StatusGoing    AttendanceStatus = "going"
	StatusInvited  AttendanceStatus = "invited"
	StatusNotGoing AttendanceStatus = "notgoing"
)

type Coordinates struct {
	Lng float64 `json:"lng" bson:"lng"`
	Lat float64 `json:"lat" bson:"lat"`
}

type Participant struct {
	UserID string           `json:"userid" bson:"userid"`
	Status AttendanceStatus `json:"status" bson:"status"`
	Coords Coordinates      `json:"coords" bson:"coords"`
}

type Event struct {
	EventID      string        `json:"eventid" bson:"eventid"`
	Title        string        `json:"title" bson:"title"`
	Description  string        `json:"description" bson:"description"`
	Category     string        `json:"category" bson:"category"`
	CreatedBy    string        `json:"createdBy" bson:"createdBy"`
	Participants []Participant `json:"participants" bson:"participants"`
	FinalVenueID string        `json:"final_venue_id,omitempty" bson:"final_venue_id,omitempty"`
	Banner       string        `json:"banner,omitempty" bson:"banner,omitempty"`
	Date         time.Time     `json:"date" bson:"date"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" bson:"updated_at"`
}

// Going returns the event's attending participants.
func (e *Event) Going() []Participant {
	var out []Participant
	for _, p := range e.Participants {
		if p.Status == StatusGoing {
			out = append(out, p)
		}
	}
	return out
}

// Attendee reports whether userID is a Going participant of the event.
func (e *Event) Attendee(userID string) bool {
	for _, p := range e.Participants {
		if p.UserID == userID && p.Status == StatusGoing {
			return true
		}
	}
	return false
}

type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// SuggestedVenue is stored one document per suggestion. Votes is keyed by
// participant id so a participant can never hold two votes on the same venue.
// Rev guards concurrent vote writes (compare-and-swap on update).
type SuggestedVenue struct {
	VenueID     string                   `json:"venueid" bson:"venueid"`
	EventID     string                   `json:"eventid" bson:"eventid"`
	PlaceID     string                   `json:"placeid" bson:"placeid"`
	Name        string                   `json:"name" bson:"name"`
	Address     string                   `json:"address" bson:"address"`
	Coords      Coordinates              `json:"coords" bson:"coords"`
	Rating      float64                  `json:"rating" bson:"rating"`
	RatingCount int                      `json:"rating_count" bson:"rating_count"`
	Types       []string                 `json:"types,omitempty" bson:"types,omitempty"`
	Phone       *string                  `json:"phone,omitempty" bson:"phone,omitempty"`
	Website     *string                  `json:"website,omitempty" bson:"website,omitempty"`
	PriceLevel  *int                     `json:"price_level,omitempty" bson:"price_level,omitempty"`
	Hours       []string                 `json:"hours,omitempty" bson:"hours,omitempty"`
	SuggestedBy string                   `json:"suggestedBy" bson:"suggestedBy"`
	Votes       map[string]VoteDirection `json:"votes" bson:"votes"`
	Rev         int64                    `json:"-" bson:"rev"`
	CreatedAt   time.Time                `json:"created_at" bson:"created_at"`
}

// Tally counts the venue's up and down votes.
func (s *SuggestedVenue) Tally() VoteTally {
	var t VoteTally
	for _, d := range s.Votes {
		switch d {
		case VoteUp:
			t.Up++
		case VoteDown:
			t.Down++
		}
	}
	return t
}

type VoteTally struct {
	Up   int `json:"up"`
	Down int `json:"down"`
}

type FlexibilityDoc struct {
	EventID   string    `json:"eventid" bson:"eventid"`
	UserID    string    `json:"userid" bson:"userid"`
	Value     float64   `json:"value" bson:"value"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// FeasibleRegion is the axis-aligned box every attendee's travel range
// overlaps, with its midpoint as the proposed meeting point.
type FeasibleRegion struct {
	MinX     float64            `json:"min_x"`
	MaxX     float64            `json:"max_x"`
	MinY     float64            `json:"min_y"`
	MaxY     float64            `json:"max_y"`
	Centroid Coordinates        `json:"centroid"`
	Reaches  []ParticipantReach `json:"reaches"`
}

// ParticipantReach is advisory: how far a participant is from the centroid
// versus how far they said they would travel. It never fails a resolution.
type ParticipantReach struct {
	UserID      string  `json:"userid"`
	Distance    float64 `json:"distance"`
	Flexibility float64 `json:"flexibility"`
	WithinReach bool    `json:"within_reach"`
}

// Notification is the payload fanned out over the notify channel.
type Notification struct {
	EventID    string   `json:"eventid"`
	Recipients []string `json:"recipients"`
	Kind       string   `json:"kind"`
	Message    string   `json:"message"`
}
