package service

import (
	"FragFS/internal/domain"
	"log"
)

// publishLayout hands the current layout to the presentation feed. A failure
// is only logged.
func publishLayout(store *domain.Store, publisher domain.LayoutPublisher) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishLayout(store.Layout()); err != nil {
		log.Println("Failed to publish layout:", err)
	}
}
