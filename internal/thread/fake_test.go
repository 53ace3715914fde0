package thread

import (
	"context"
	"sync"
	"time"

	"societyBack/internal/client"
	"societyBack/internal/models"
	"societyBack/internal/store"
)

// fakeAPI keeps comments in memory the way the backend does: populated
// customers, one reply per comment, server-side timestamps.
type fakeAPI struct {
	mu       sync.Mutex
	comments map[int][]models.Comment
	users    map[int]models.UserSummary
	nextID   int
	now      time.Time

	mutationErr  error
	listErr      error
	omitCustomer bool
	calls        []string
	events       chan models.CommentEvent
	beforeCreate func()
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		comments: map[int][]models.Comment{},
		users:    map[int]models.UserSummary{},
		nextID:   100,
		now:      time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC),
	}
}

func (f *fakeAPI) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) find(id int) (int, int) {
	for serviceID, list := range f.comments {
		for i, c := range list {
			if c.ID == id {
				return serviceID, i
			}
		}
	}
	return 0, -1
}

func (f *fakeAPI) Comments(ctx context.Context, serviceID int) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Comment{}, f.comments[serviceID]...), nil
}

// CreateComment authors as user 1 unless a test says otherwise.
func (f *fakeAPI) CreateComment(ctx context.Context, serviceID int, text string, rating int) (models.Comment, error) {
	if f.beforeCreate != nil {
		f.beforeCreate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("create")
	if f.mutationErr != nil {
		return models.Comment{}, f.mutationErr
	}
	f.nextID++
	c := models.Comment{ID: f.nextID, ServiceID: serviceID, Customer: models.PopulatedCustomer(f.users[1]), Comment: text, Rating: rating, CreatedAt: f.now}
	f.comments[serviceID] = append([]models.Comment{c}, f.comments[serviceID]...)
	if f.omitCustomer {
		c.Customer = models.RefCustomer(1)
	}
	return c, nil
}

func (f *fakeAPI) UpdateComment(ctx context.Context, commentID int, text string, rating int) (models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update")
	if f.mutationErr != nil {
		return models.Comment{}, f.mutationErr
	}
	serviceID, i := f.find(commentID)
	if i < 0 {
		return models.Comment{}, &client.APIError{Status: 404, Message: "comment not found"}
	}
	c := &f.comments[serviceID][i]
	c.Comment, c.Rating = text, rating
	updated := f.now
	c.UpdatedAt = &updated
	out := *c
	out.Customer = models.RefCustomer(c.Customer.ID)
	return out, nil
}

func (f *fakeAPI) DeleteComment(ctx context.Context, commentID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete")
	if f.mutationErr != nil {
		return f.mutationErr
	}
	serviceID, i := f.find(commentID)
	if i >= 0 {
		list := f.comments[serviceID]
		f.comments[serviceID] = append(list[:i:i], list[i+1:]...)
	}
	return nil
}

func (f *fakeAPI) setReply(commentID int, text *string) (models.Comment, error) {
	serviceID, i := f.find(commentID)
	if i < 0 {
		return models.Comment{}, &client.APIError{Status: 404, Message: "comment not found"}
	}
	c := &f.comments[serviceID][i]
	if text == nil {
		c.Reply, c.ReplyBy, c.ReplyCreatedAt = nil, nil, nil
		return *c, nil
	}
	t := *text
	c.Reply = &t
	c.ReplyBy = &models.ReplyAuthor{User: f.users[2]}
	at := f.now.Add(time.Minute)
	c.ReplyCreatedAt = &at
	return *c, nil
}

func (f *fakeAPI) AddReply(ctx context.Context, commentID int, text string) (models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("add-reply")
	if f.mutationErr != nil {
		return models.Comment{}, f.mutationErr
	}
	return f.setReply(commentID, &text)
}

func (f *fakeAPI) UpdateReply(ctx context.Context, commentID int, text string) (models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update-reply")
	if f.mutationErr != nil {
		return models.Comment{}, f.mutationErr
	}
	return f.setReply(commentID, &text)
}

func (f *fakeAPI) DeleteReply(ctx context.Context, commentID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete-reply")
	if f.mutationErr != nil {
		return f.mutationErr
	}
	_, err := f.setReply(commentID, nil)
	return err
}

func (f *fakeAPI) SubscribeComments(ctx context.Context, serviceID int) (<-chan models.CommentEvent, error) {
	return f.events, nil
}

func (f *fakeAPI) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.messages) == 0 {
		return ""
	}
	return n.messages[len(n.messages)-1]
}

type testLogger struct{}

func (testLogger) Infof(string, ...interface{})  {}
func (testLogger) Errorf(string, ...interface{}) {}

var (
	customerA = models.UserSummary{ID: 1, Name: "Asel"}
	provider  = models.UserSummary{ID: 2, Name: "Marat"}
	customerB = models.UserSummary{ID: 3, Name: "Bolat"}
)

const serviceID = 50

// setup returns a manager whose store knows the roster: provider 2 owns
// service 50.
func setup(viewer *models.UserSummary) (*Manager, *fakeAPI, *recordingNotifier, *store.Store) {
	api := newFakeAPI()
	api.users[1] = customerA
	api.users[2] = provider
	api.users[3] = customerB

	st := store.New()
	st.Dispatch(store.ProvidersLoaded{Providers: []models.Provider{{
		ID: 7, User: provider, ServiceOfferings: []models.ServiceOffering{{ID: serviceID, ProviderID: 7}},
	}}})
	if viewer != nil {
		st.Dispatch(store.ViewerSet{Viewer: store.Viewer{ID: viewer.ID, Name: viewer.Name, User: *viewer}})
	}

	notifier := &recordingNotifier{}
	m := NewManager(api, st, notifier, testLogger{})
	m.now = func() time.Time { return api.now }
	return m, api, notifier, st
}
