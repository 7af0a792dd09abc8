package storage

import (
	"log"

	"github.com/thrilogia-ux/havaia-sub001/models"
)

var (
	Users              *Collection[models.User]
	Experiences        *Collection[models.Experience]
	PremiumExperiences *Collection[models.PremiumExperience]
	Groups             *Collection[models.Group]
	Posts              *Collection[models.Post]
	Messages           *Collection[models.Message]
	Bookings           *Collection[models.Booking]
)

// Initialize binds each collection to its JSON document under dataDir.
func Initialize(dataDir string) {
	Users = NewCollection[models.User](dataDir, "users")
	Experiences = NewCollection[models.Experience](dataDir, "experiences")
	PremiumExperiences = NewCollection[models.PremiumExperience](dataDir, "premium-experiences")
	Groups = NewCollection[models.Group](dataDir, "groups")
	Posts = NewCollection[models.Post](dataDir, "posts")
	Messages = NewCollection[models.Message](dataDir, "messages")
	Bookings = NewCollection[models.Booking](dataDir, "reservations")

	log.Println("🗄️  JSON store initialized at", dataDir)
}
