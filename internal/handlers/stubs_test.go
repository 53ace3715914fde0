package handlers

import (
	"context"
	"net/http"

	"societyBack/internal/models"
)

// memOfferings knows offerings by id and the user that owns each one.
type memOfferings struct {
	owners map[int]int
}

func (m *memOfferings) ListAll(ctx context.Context) ([]models.ServiceOffering, error) {
	return nil, nil
}

func (m *memOfferings) ListByProvider(ctx context.Context, providerID int) ([]models.ServiceOffering, error) {
	return nil, nil
}

func (m *memOfferings) ListWishlist(ctx context.Context, userID int) ([]models.ServiceOffering, error) {
	return nil, nil
}

func (m *memOfferings) GetByID(ctx context.Context, id int) (models.ServiceOffering, error) {
	if _, ok := m.owners[id]; !ok {
		return models.ServiceOffering{}, models.ErrServiceNotFound
	}
	return models.ServiceOffering{ID: id}, nil
}

func (m *memOfferings) Create(ctx context.Context, providerID int, req models.OfferingRequest) (int, error) {
	return 0, nil
}

func (m *memOfferings) Update(ctx context.Context, id int, req models.OfferingRequest) error {
	return nil
}

func (m *memOfferings) Delete(ctx context.Context, id int) error {
	return nil
}

func (m *memOfferings) AddImage(ctx context.Context, id int, url string) error {
	return nil
}

func (m *memOfferings) OwnerUserID(ctx context.Context, serviceID int) (int, error) {
	owner, ok := m.owners[serviceID]
	if !ok {
		return 0, models.ErrServiceNotFound
	}
	return owner, nil
}

type memComments struct {
	owners *memOfferings
	rows   map[int]models.Comment
	nextID int
}

func (m *memComments) withProvider(c models.Comment) models.Comment {
	if owner, ok := m.owners.owners[c.ServiceID]; ok {
		c.Provider = &models.UserSummary{ID: owner}
	}
	return c
}

func (m *memComments) ListByService(ctx context.Context, serviceID int) ([]models.Comment, error) {
	out := []models.Comment{}
	for id := m.nextID; id > 0; id-- {
		if c, ok := m.rows[id]; ok && c.ServiceID == serviceID {
			out = append(out, m.withProvider(c))
		}
	}
	return out, nil
}

func (m *memComments) GetByID(ctx context.Context, id int) (models.Comment, error) {
	c, ok := m.rows[id]
	if !ok {
		return models.Comment{}, models.ErrCommentNotFound
	}
	return m.withProvider(c), nil
}

func (m *memComments) Create(ctx context.Context, serviceID, customerID int, text string, rating int) (int, error) {
	for _, c := range m.rows {
		if c.ServiceID == serviceID && c.Customer.ID == customerID {
			return 0, models.ErrAlreadyReviewed
		}
	}
	m.nextID++
	m.rows[m.nextID] = models.Comment{ID: m.nextID, ServiceID: serviceID, Customer: models.RefCustomer(customerID), Comment: text, Rating: rating}
	return m.nextID, nil
}

func (m *memComments) Update(ctx context.Context, id int, text string, rating int) error {
	c := m.rows[id]
	c.Comment, c.Rating = text, rating
	m.rows[id] = c
	return nil
}

func (m *memComments) Delete(ctx context.Context, id int) error {
	delete(m.rows, id)
	return nil
}

func (m *memComments) SetReply(ctx context.Context, id, userID int, text string) error {
	c := m.rows[id]
	c.Reply = &text
	c.ReplyBy = &models.ReplyAuthor{User: models.UserSummary{ID: userID}}
	m.rows[id] = c
	return nil
}

func (m *memComments) ClearReply(ctx context.Context, id int) error {
	c := m.rows[id]
	c.Reply, c.ReplyBy = nil, nil
	m.rows[id] = c
	return nil
}

type memWishlist map[[2]int]bool

func (m memWishlist) Contains(ctx context.Context, userID, serviceID int) (bool, error) {
	return m[[2]int{userID, serviceID}], nil
}

func (m memWishlist) Add(ctx context.Context, userID, serviceID int) error {
	m[[2]int{userID, serviceID}] = true
	return nil
}

func (m memWishlist) Remove(ctx context.Context, userID, serviceID int) error {
	delete(m, [2]int{userID, serviceID})
	return nil
}

// as runs next with the given caller identity, the way the auth middleware does.
func as(userID int, role string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next(w, r.WithContext(WithIdentity(r.Context(), userID, role)))
	})
}
