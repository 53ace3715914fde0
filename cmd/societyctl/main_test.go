package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bmizerany/pat"
)

const rosterJSON = `{"providers":[
 {"id":7,"user":{"id":2,"name":"Marat"},"serviceOfferings":[
  {"id":50,"name":"Plumbing","serviceCategory":"Home","price":1500,"providerRef":7,"rating":4.5,"reviewsCount":2},
  {"id":51,"name":"Tiling","serviceCategory":"Home","price":"900","providerRef":7},
  {"id":52,"name":"Guitar lessons","serviceCategory":"Education","price":"ask me","providerRef":7}
 ]}
]}`

const commentsJSON = `{"comments":[
 {"id":11,"serviceRef":50,"customer":{"id":1,"name":"Asel"},"comment":"Fast and tidy","rating":5,"createdAt":"2026-03-01T10:00:00Z","reply":null},
 {"id":12,"serviceRef":50,"customer":"3","comment":"Ok","rating":3,"createdAt":"2026-03-02T10:00:00Z","reply":"Thanks"}
]}`

// fakeBackend answers the endpoints the CLI reads. Signing in as any email
// returns the user named by it: marat is the provider, asel a customer.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := pat.New()
	mux.Post("/user/sign_in", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		switch req.Email {
		case "marat@example.com":
			w.Write([]byte(`{"user":{"id":2,"name":"Marat","role":"provider"}}`))
		case "asel@example.com":
			w.Write([]byte(`{"user":{"id":1,"name":"Asel","role":"customer"}}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"invalid credentials"}`))
		}
	}))
	mux.Get("/provider-profile", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rosterJSON))
	}))
	mux.Get("/comments/get-comments/:serviceId", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(commentsJSON))
	}))
	mux.Post("/comments/create-comment/:serviceId", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("create must not be sent")
	}))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, srv *httptest.Server, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(append([]string{"--server", srv.URL}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestServicesAppliesFacets(t *testing.T) {
	srv := fakeBackend(t)

	out, _, err := execute(t, srv, "services", "--category", "Home", "--sort", "High to Low")
	if err != nil {
		t.Fatalf("services: %v", err)
	}
	if !strings.Contains(out, "2 services (prices 900 to 1500)") {
		t.Fatalf("unexpected header:\n%s", out)
	}
	if strings.Index(out, "Plumbing") > strings.Index(out, "Tiling") {
		t.Fatalf("expected descending price order:\n%s", out)
	}
	if strings.Contains(out, "Guitar") {
		t.Fatalf("category filter ignored:\n%s", out)
	}

	out, _, err = execute(t, srv, "services", "--max-price", "1000")
	if err != nil {
		t.Fatalf("services: %v", err)
	}
	if !strings.Contains(out, "1 services") || !strings.Contains(out, "Tiling") {
		t.Fatalf("expected only Tiling under 1000:\n%s", out)
	}
}

func TestReviewsShowPermissions(t *testing.T) {
	srv := fakeBackend(t)

	out, _, err := execute(t, srv, "--email", "marat@example.com", "--password", "x", "reviews", "50")
	if err != nil {
		t.Fatalf("reviews: %v", err)
	}
	if !strings.Contains(out, "#11 ***** Asel") || !strings.Contains(out, "[reply]") {
		t.Fatalf("expected reply control for the provider:\n%s", out)
	}
	if !strings.Contains(out, "> Thanks") || !strings.Contains(out, "[edit-reply delete-reply]") {
		t.Fatalf("expected reply controls on the answered review:\n%s", out)
	}

	out, _, err = execute(t, srv, "--email", "asel@example.com", "--password", "x", "reviews", "50")
	if err != nil {
		t.Fatalf("reviews: %v", err)
	}
	if !strings.Contains(out, "[edit delete]") || strings.Contains(out, "You can review") {
		t.Fatalf("expected author controls and no create prompt:\n%s", out)
	}
}

func TestReviewCreateValidatesLocally(t *testing.T) {
	srv := fakeBackend(t)

	_, _, err := execute(t, srv, "--email", "asel@example.com", "--password", "x", "review", "create", "50", "--rating", "9", "--text", "hi")
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestSignInFailureSurfacesServerMessage(t *testing.T) {
	srv := fakeBackend(t)

	_, _, err := execute(t, srv, "--email", "nobody@example.com", "--password", "x", "reviews", "50")
	if err == nil || !strings.Contains(err.Error(), "invalid credentials") {
		t.Fatalf("expected server message, got %v", err)
	}
}
