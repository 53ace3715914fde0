package thread

import (
	"societyBack/internal/models"
)

// Permissions are the controls the viewer may see on one review. They only
// hide controls; the backend enforces the same rules.
type Permissions struct {
	CanEdit        bool
	CanDelete      bool
	CanReply       bool
	CanEditReply   bool
	CanDeleteReply bool
}

// ResolveProvider returns the user id of the provider owning serviceID. The
// cached roster is consulted first; without it the populated provider and
// replyBy fields of the cached comments are used.
func (m *Manager) ResolveProvider(serviceID int) (int, bool) {
	state := m.store.State()
	if p, ok := state.OfferingOwner(serviceID); ok && p.User.ID != 0 {
		return p.User.ID, true
	}
	for _, c := range state.CommentsFor(serviceID) {
		if c.Provider != nil && c.Provider.ID != 0 {
			return c.Provider.ID, true
		}
	}
	for _, c := range state.CommentsFor(serviceID) {
		if c.ReplyBy != nil && c.ReplyBy.User.ID != 0 {
			return c.ReplyBy.User.ID, true
		}
	}
	return 0, false
}

// PermissionsFor computes the viewer's permissions on c.
func (m *Manager) PermissionsFor(c models.Comment) Permissions {
	v := m.store.State().Viewer
	if v == nil {
		return Permissions{}
	}

	var p Permissions
	if c.Customer.ID != 0 && c.Customer.ID == v.ID {
		p.CanEdit = true
		p.CanDelete = true
	}

	providerID, ok := m.ResolveProvider(c.ServiceID)
	if ok && providerID == v.ID {
		if c.HasReply() {
			p.CanEditReply = true
			p.CanDeleteReply = true
		} else {
			p.CanReply = true
		}
	}
	return p
}
