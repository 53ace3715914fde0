package services

import (
	"context"
	"sync"

	"societyBack/internal/models"
)

type stubUsers struct {
	byID     map[int]models.User
	sessions map[int]models.Session
	nextID   int
}

func newStubUsers() *stubUsers {
	return &stubUsers{byID: map[int]models.User{}, sessions: map[int]models.Session{}}
}

func (s *stubUsers) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	for _, u := range s.byID {
		if u.Email == user.Email {
			return models.User{}, models.ErrDuplicateEmail
		}
	}
	s.nextID++
	user.ID = s.nextID
	s.byID[user.ID] = user
	return user, nil
}

func (s *stubUsers) GetUserByID(ctx context.Context, id int) (models.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return models.User{}, models.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUsers) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, models.ErrUserNotFound
}

func (s *stubUsers) UpdateFCMToken(ctx context.Context, userID int, token string) error {
	u := s.byID[userID]
	u.FCMToken = token
	s.byID[userID] = u
	return nil
}

func (s *stubUsers) SetSession(ctx context.Context, userID int, session models.Session) error {
	s.sessions[userID] = session
	return nil
}

func (s *stubUsers) GetSessionByToken(ctx context.Context, token string) (models.Session, error) {
	for _, session := range s.sessions {
		if session.RefreshToken == token {
			return session, nil
		}
	}
	return models.Session{}, models.ErrInvalidSession
}

func (s *stubUsers) ClearSession(ctx context.Context, userID int) error {
	delete(s.sessions, userID)
	return nil
}

// stubCatalog backs both OfferingStore and ProviderStore.
type stubCatalog struct {
	providers map[int]models.Provider
	offerings map[int]models.ServiceOffering
	wishlist  map[int][]int
	nextID    int
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{providers: map[int]models.Provider{}, offerings: map[int]models.ServiceOffering{}, wishlist: map[int][]int{}, nextID: 100}
}

func (s *stubCatalog) addProvider(id int, user models.UserSummary) {
	s.providers[id] = models.Provider{ID: id, User: user, ServiceOfferings: []models.ServiceOffering{}}
}

func (s *stubCatalog) addOffering(id, providerID int, name string) {
	s.offerings[id] = models.ServiceOffering{ID: id, ProviderID: providerID, Name: name}
}

func (s *stubCatalog) ListProviders(ctx context.Context) ([]models.Provider, error) {
	out := []models.Provider{}
	for id := 1; id <= len(s.providers)+10; id++ {
		if p, ok := s.providers[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubCatalog) GetProviderByID(ctx context.Context, id int) (models.Provider, error) {
	p, ok := s.providers[id]
	if !ok {
		return models.Provider{}, models.ErrProviderNotFound
	}
	return p, nil
}

func (s *stubCatalog) GetProviderByUserID(ctx context.Context, userID int) (models.Provider, error) {
	for _, p := range s.providers {
		if p.User.ID == userID {
			return p, nil
		}
	}
	return models.Provider{}, models.ErrProviderNotFound
}

func (s *stubCatalog) UpsertProfile(ctx context.Context, userID int, req models.ProviderProfileRequest) (int, error) {
	if p, err := s.GetProviderByUserID(ctx, userID); err == nil {
		p.Bio, p.Experience = req.Bio, req.Experience
		s.providers[p.ID] = p
		return p.ID, nil
	}
	id := len(s.providers) + 1
	s.providers[id] = models.Provider{ID: id, User: models.UserSummary{ID: userID}, Bio: req.Bio, Experience: req.Experience}
	return id, nil
}

func (s *stubCatalog) ListAll(ctx context.Context) ([]models.ServiceOffering, error) {
	out := []models.ServiceOffering{}
	for id := 0; id <= s.nextID+100; id++ {
		if o, ok := s.offerings[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *stubCatalog) ListByProvider(ctx context.Context, providerID int) ([]models.ServiceOffering, error) {
	all, _ := s.ListAll(ctx)
	out := []models.ServiceOffering{}
	for _, o := range all {
		if o.ProviderID == providerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *stubCatalog) ListWishlist(ctx context.Context, userID int) ([]models.ServiceOffering, error) {
	out := []models.ServiceOffering{}
	for _, id := range s.wishlist[userID] {
		out = append(out, s.offerings[id])
	}
	return out, nil
}

func (s *stubCatalog) GetByID(ctx context.Context, id int) (models.ServiceOffering, error) {
	o, ok := s.offerings[id]
	if !ok {
		return models.ServiceOffering{}, models.ErrServiceNotFound
	}
	return o, nil
}

func (s *stubCatalog) Create(ctx context.Context, providerID int, req models.OfferingRequest) (int, error) {
	s.nextID++
	o := models.ServiceOffering{ID: s.nextID, ProviderID: providerID, Name: req.Name, ServiceCategory: req.ServiceCategory}
	if req.Price != nil {
		o.Price = models.NewPrice(*req.Price)
	}
	s.offerings[o.ID] = o
	return o.ID, nil
}

func (s *stubCatalog) Update(ctx context.Context, id int, req models.OfferingRequest) error {
	o, ok := s.offerings[id]
	if !ok {
		return models.ErrServiceNotFound
	}
	o.Name = req.Name
	s.offerings[id] = o
	return nil
}

func (s *stubCatalog) Delete(ctx context.Context, id int) error {
	if _, ok := s.offerings[id]; !ok {
		return models.ErrServiceNotFound
	}
	delete(s.offerings, id)
	return nil
}

func (s *stubCatalog) AddImage(ctx context.Context, id int, url string) error {
	o, ok := s.offerings[id]
	if !ok {
		return models.ErrServiceNotFound
	}
	o.PortfolioImages = append(o.PortfolioImages, models.PortfolioImage{URL: url})
	s.offerings[id] = o
	return nil
}

func (s *stubCatalog) OwnerUserID(ctx context.Context, serviceID int) (int, error) {
	o, ok := s.offerings[serviceID]
	if !ok {
		return 0, models.ErrServiceNotFound
	}
	return s.providers[o.ProviderID].User.ID, nil
}

// stubComments joins against the catalog the way the SQL does.
type stubComments struct {
	catalog *stubCatalog
	users   map[int]models.UserSummary
	rows    map[int]models.Comment
	nextID  int
}

func newStubComments(catalog *stubCatalog, users ...models.UserSummary) *stubComments {
	s := &stubComments{catalog: catalog, users: map[int]models.UserSummary{}, rows: map[int]models.Comment{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *stubComments) populate(c models.Comment) models.Comment {
	c.Customer = models.PopulatedCustomer(s.users[c.Customer.ID])
	if ownerID, err := s.catalog.OwnerUserID(context.Background(), c.ServiceID); err == nil {
		p := s.users[ownerID]
		c.Provider = &p
	}
	return c
}

func (s *stubComments) ListByService(ctx context.Context, serviceID int) ([]models.Comment, error) {
	out := []models.Comment{}
	for id := s.nextID; id > 0; id-- {
		if c, ok := s.rows[id]; ok && c.ServiceID == serviceID {
			out = append(out, s.populate(c))
		}
	}
	return out, nil
}

func (s *stubComments) GetByID(ctx context.Context, id int) (models.Comment, error) {
	c, ok := s.rows[id]
	if !ok {
		return models.Comment{}, models.ErrCommentNotFound
	}
	return s.populate(c), nil
}

func (s *stubComments) Create(ctx context.Context, serviceID, customerID int, text string, rating int) (int, error) {
	for _, c := range s.rows {
		if c.ServiceID == serviceID && c.Customer.ID == customerID {
			return 0, models.ErrAlreadyReviewed
		}
	}
	s.nextID++
	s.rows[s.nextID] = models.Comment{ID: s.nextID, ServiceID: serviceID, Customer: models.RefCustomer(customerID), Comment: text, Rating: rating}
	return s.nextID, nil
}

func (s *stubComments) Update(ctx context.Context, id int, text string, rating int) error {
	c, ok := s.rows[id]
	if !ok {
		return models.ErrCommentNotFound
	}
	c.Comment, c.Rating = text, rating
	s.rows[id] = c
	return nil
}

func (s *stubComments) Delete(ctx context.Context, id int) error {
	if _, ok := s.rows[id]; !ok {
		return models.ErrCommentNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *stubComments) SetReply(ctx context.Context, id, userID int, text string) error {
	c, ok := s.rows[id]
	if !ok {
		return models.ErrCommentNotFound
	}
	c.Reply = &text
	c.ReplyBy = &models.ReplyAuthor{User: s.users[userID]}
	return s.save(c)
}

func (s *stubComments) save(c models.Comment) error {
	s.rows[c.ID] = c
	return nil
}

func (s *stubComments) ClearReply(ctx context.Context, id int) error {
	c, ok := s.rows[id]
	if !ok {
		return models.ErrCommentNotFound
	}
	c.Reply, c.ReplyBy, c.ReplyCreatedAt = nil, nil, nil
	return s.save(c)
}

type recordingEvents struct {
	mu     sync.Mutex
	events []models.CommentEvent
}

func (r *recordingEvents) Publish(e models.CommentEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingEvents) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

type pushed struct {
	userID int
	title  string
}

type chanPusher chan pushed

func (p chanPusher) Push(ctx context.Context, userID int, title, body string, data map[string]string) error {
	p <- pushed{userID: userID, title: title}
	return nil
}

type testLogger struct{}

func (testLogger) Infof(string, ...interface{})  {}
func (testLogger) Errorf(string, ...interface{}) {}
