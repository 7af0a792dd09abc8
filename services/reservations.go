package services

import (
	"errors"
	"time"

	"github.com/thrilogia-ux/havaia-sub001/models"
	"github.com/thrilogia-ux/havaia-sub001/storage"
)

var (
	ErrExperienceNotFound  = errors.New("premium experience not found")
	ErrCapacityExceeded    = errors.New("not enough seats available")
	ErrAlreadyReserved     = errors.New("user already has a reservation for this experience")
	ErrReservationNotFound = errors.New("no reservation found for this user")
	ErrInvalidSeats        = errors.New("seats must be at least 1")
)

// Reserve books seats on a premium experience for one user. At most
// one reservation may exist per (experience, user) pair, and the
// reserved total never exceeds MaxSeats. The whole check-and-append
// runs inside the collection's Update so concurrent requests cannot
// both pass the capacity check against a stale snapshot.
func Reserve(experienceID, userID, userName, userAvatar string, seats int) (models.PremiumExperience, error) {
	if seats < 1 {
		return models.PremiumExperience{}, ErrInvalidSeats
	}

	var updated models.PremiumExperience
	err := storage.PremiumExperiences.Update(func(items []models.PremiumExperience) ([]models.PremiumExperience, error) {
		idx := findPremium(items, experienceID)
		if idx < 0 {
			return nil, ErrExperienceNotFound
		}
		exp := &items[idx]

		// phrased as a subtraction so a huge seats value cannot wrap
		// the sum past MaxSeats
		if seats > exp.MaxSeats-exp.ReservedSeats {
			return nil, ErrCapacityExceeded
		}
		if exp.ReservationIndex(userID) >= 0 {
			return nil, ErrAlreadyReserved
		}

		now := time.Now().UTC()
		exp.Reservations = append(exp.Reservations, models.Reservation{
			UserID:     userID,
			UserName:   userName,
			UserAvatar: userAvatar,
			Seats:      seats,
			Timestamp:  now,
		})
		exp.ReservedSeats += seats
		exp.UpdatedAt = now

		updated = *exp
		return items, nil
	})
	if err != nil {
		return models.PremiumExperience{}, err
	}
	return updated, nil
}

// Cancel removes the user's reservation and returns its seats to the
// pool. The decrement mirrors exactly what Reserve added, so the
// counter cannot go below zero.
func Cancel(experienceID, userID string) (models.PremiumExperience, error) {
	var updated models.PremiumExperience
	err := storage.PremiumExperiences.Update(func(items []models.PremiumExperience) ([]models.PremiumExperience, error) {
		idx := findPremium(items, experienceID)
		if idx < 0 {
			return nil, ErrExperienceNotFound
		}
		exp := &items[idx]

		ri := exp.ReservationIndex(userID)
		if ri < 0 {
			return nil, ErrReservationNotFound
		}

		exp.ReservedSeats -= exp.Reservations[ri].Seats
		exp.Reservations = append(exp.Reservations[:ri], exp.Reservations[ri+1:]...)
		exp.UpdatedAt = time.Now().UTC()

		updated = *exp
		return items, nil
	})
	if err != nil {
		return models.PremiumExperience{}, err
	}
	return updated, nil
}

func findPremium(items []models.PremiumExperience, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
