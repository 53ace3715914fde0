// Package store holds the client-side application state. State values are
// never mutated in place: every action goes through Reduce, which returns a
// new State sharing untouched slices and maps with the old one.
package store

import (
	"societyBack/internal/models"
)

// Viewer is the signed-in user as seen by the client.
type Viewer struct {
	ID   int
	Name string
	Role string
	User models.UserSummary
}

type State struct {
	Viewer    *Viewer
	Providers []models.Provider
	// Comments is the cached review list per service id.
	Comments map[int][]models.Comment
	Wishlist map[int]struct{}

	// applied is the newest ticket applied to each service's comment list.
	applied map[int]uint64
}

// CommentsFor returns the cached list for serviceID.
func (s State) CommentsFor(serviceID int) []models.Comment {
	return s.Comments[serviceID]
}

// FindComment looks a comment up across every cached list.
func (s State) FindComment(commentID int) (models.Comment, int, bool) {
	for serviceID, list := range s.Comments {
		for _, c := range list {
			if c.ID == commentID {
				return c, serviceID, true
			}
		}
	}
	return models.Comment{}, 0, false
}

// ServicesContaining lists the service ids whose cached list holds commentID.
func (s State) ServicesContaining(commentID int) []int {
	var out []int
	for serviceID, list := range s.Comments {
		for _, c := range list {
			if c.ID == commentID {
				out = append(out, serviceID)
				break
			}
		}
	}
	return out
}

// OfferingOwner returns the provider that owns serviceID according to the
// cached roster.
func (s State) OfferingOwner(serviceID int) (models.Provider, bool) {
	for _, p := range s.Providers {
		for _, o := range p.ServiceOfferings {
			if o.ID == serviceID {
				return p, true
			}
		}
	}
	return models.Provider{}, false
}

func (s State) InWishlist(serviceID int) bool {
	_, ok := s.Wishlist[serviceID]
	return ok
}
