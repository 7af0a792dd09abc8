package models

import "time"

// Reservation is a seat hold embedded in a premium experience.
// Reservations are never edited in place: cancel-then-rebook is the
// only update path.
type Reservation struct {
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	UserAvatar string    `json:"userAvatar,omitempty"`
	Seats      int       `json:"seats"`
	Timestamp  time.Time `json:"timestamp"`
}

// PremiumExperienceDate tracks per-date seat usage nested under a
// premium experience.
type PremiumExperienceDate struct {
	Date          string `json:"date"`
	ReservedSeats int    `json:"reservedSeats"`
}

// PremiumExperience is an experience with seat capacity accounting.
// ReservedSeats is a cached counter kept equal to the sum of the
// embedded reservations' seats by every mutation path.
type PremiumExperience struct {
	ID            string                  `json:"id"`
	Title         string                  `json:"title"`
	Description   string                  `json:"description,omitempty"`
	Location      string                  `json:"location,omitempty"`
	Category      string                  `json:"category,omitempty"`
	Price         float64                 `json:"price,omitempty"`
	Language      string                  `json:"language,omitempty"`
	Status        string                  `json:"status"`
	HostID        string                  `json:"hostId,omitempty"`
	Host          *Host                   `json:"host,omitempty"`
	MaxSeats      int                     `json:"maxSeats"`
	ReservedSeats int                     `json:"reservedSeats"`
	Dates         []PremiumExperienceDate `json:"dates,omitempty"`
	Reservations  []Reservation           `json:"reservations"`
	CreatedAt     time.Time               `json:"createdAt"`
	UpdatedAt     time.Time               `json:"updatedAt"`
}

func (p PremiumExperience) HostEmail() string {
	if p.Host == nil {
		return ""
	}
	return p.Host.Email
}

// ReservationIndex returns the position of userID's reservation, or -1.
func (p PremiumExperience) ReservationIndex(userID string) int {
	for i := range p.Reservations {
		if p.Reservations[i].UserID == userID {
			return i
		}
	}
	return -1
}
