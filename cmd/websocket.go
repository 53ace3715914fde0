package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"societyBack/internal/models"
	"societyBack/internal/services"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	readLimit  = 4 << 10
)

// subscriber is one socket following one service; mu serializes its writes.
type subscriber struct {
	serviceID int
	conn      *websocket.Conn
	mu        sync.Mutex
}

// offeringLookup resolves a service id to its owner, failing with
// models.ErrServiceNotFound for unknown ids.
type offeringLookup interface {
	OwnerUserID(ctx context.Context, serviceID int) (int, error)
}

// CommentHub fans comment events out to the sockets following each service.
type CommentHub struct {
	log       services.Logger
	offerings offeringLookup
	upgrader  websocket.Upgrader

	mu   sync.RWMutex
	subs map[int]map[*subscriber]struct{}
}

func NewCommentHub(log services.Logger, offerings offeringLookup, allowedOrigins []string) *CommentHub {
	return &CommentHub{
		log:       log,
		offerings: offerings,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		subs: make(map[int]map[*subscriber]struct{}),
	}
}

// originChecker allows any origin when the list is empty or holds "*".
func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return len(set) == 0 || origin == "" || set[origin]
	}
}

// ServeComments upgrades GET /ws/comments/:serviceId. The socket is write
// only; incoming frames other than control frames are discarded.
func (h *CommentHub) ServeComments(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.Atoi(r.URL.Query().Get(":serviceId"))
	if err != nil || serviceID <= 0 {
		http.Error(w, "invalid service id", http.StatusBadRequest)
		return
	}
	if _, err := h.offerings.OwnerUserID(r.Context(), serviceID); err != nil {
		if errors.Is(err, models.ErrServiceNotFound) {
			http.Error(w, "service not found", http.StatusNotFound)
			return
		}
		h.log.Errorf("comment ws: lookup service %d: %v", serviceID, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("comment ws upgrade failed: %v", err)
		return
	}

	s := &subscriber{serviceID: serviceID, conn: conn}
	h.mu.Lock()
	if h.subs[serviceID] == nil {
		h.subs[serviceID] = make(map[*subscriber]struct{})
	}
	h.subs[serviceID][s] = struct{}{}
	h.mu.Unlock()
	h.log.Infof("comment ws: subscribed to service %d", serviceID)

	go h.pingLoop(s)
	go h.readLoop(s)
}

func (h *CommentHub) subscribed(s *subscriber) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.subs[s.serviceID][s]
	return ok
}

func (h *CommentHub) pingLoop(s *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for range ticker.C {
		if !h.subscribed(s) {
			return
		}
		h.write(s, func(c *websocket.Conn) error {
			return c.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
		})
	}
}

func (h *CommentHub) readLoop(s *subscriber) {
	defer h.drop(s)

	s.conn.SetReadLimit(readLimit)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *CommentHub) drop(s *subscriber) {
	_ = s.conn.Close()
	h.mu.Lock()
	if set, ok := h.subs[s.serviceID]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(h.subs, s.serviceID)
		}
	}
	h.mu.Unlock()
}

func (h *CommentHub) write(s *subscriber, fn func(*websocket.Conn) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := fn(s.conn); err != nil {
		h.log.Errorf("comment ws write to service %d failed: %v", s.serviceID, err)
		h.drop(s)
	}
}

// Publish sends event to every subscriber of its service.
func (h *CommentHub) Publish(event models.CommentEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Errorf("comment ws marshal failed: %v", err)
		return
	}

	h.mu.RLock()
	targets := make([]*subscriber, 0, len(h.subs[event.ServiceID]))
	for s := range h.subs[event.ServiceID] {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	for _, s := range targets {
		h.write(s, func(c *websocket.Conn) error {
			return c.WriteMessage(websocket.TextMessage, data)
		})
	}
}

// Subscribers reports how many sockets follow serviceID.
func (h *CommentHub) Subscribers(serviceID int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[serviceID])
}

// Close drops every subscriber.
func (h *CommentHub) Close() {
	h.mu.RLock()
	var all []*subscriber
	for _, set := range h.subs {
		for s := range set {
			all = append(all, s)
		}
	}
	h.mu.RUnlock()
	for _, s := range all {
		h.drop(s)
	}
}
