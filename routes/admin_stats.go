package routes

import (
	"time"

	"github.com/kataras/iris/v12"

	"github.com/thrilogia-ux/havaia-sub001/models"
	"github.com/thrilogia-ux/havaia-sub001/storage"
)

// GET /admin/stats
func AdminStats(ctx iris.Context) {
	var pendingExperiences, pendingPremium int64
	for _, exp := range storage.Experiences.Load() {
		if exp.Status == models.StatusPending {
			pendingExperiences++
		}
	}

	var seatsBooked int64
	since7 := time.Now().AddDate(0, 0, -7)
	since30 := time.Now().AddDate(0, 0, -30)
	var newRes7, newRes30 int64
	for _, exp := range storage.PremiumExperiences.Load() {
		if exp.Status == models.StatusPending {
			pendingPremium++
		}
		seatsBooked += int64(exp.ReservedSeats)
		for _, r := range exp.Reservations {
			if r.Timestamp.After(since7) {
				newRes7++
			}
			if r.Timestamp.After(since30) {
				newRes30++
			}
		}
	}

	ctx.JSON(iris.Map{
		"data": iris.Map{
			"users":                int64(len(storage.Users.Load())),
			"groups":               int64(len(storage.Groups.Load())),
			"posts":                int64(len(storage.Posts.Load())),
			"pending_experiences":  pendingExperiences,
			"pending_premium":      pendingPremium,
			"seats_booked":         seatsBooked,
			"new_reservations_7d":  newRes7,
			"new_reservations_30d": newRes30,
		},
		"meta":  iris.Map{},
		"links": iris.Map{},
	})
}
