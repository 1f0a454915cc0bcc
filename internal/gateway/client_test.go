package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateCheckoutSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test" {
			t.Fatalf("unexpected auth header: %q", got)
		}

		var req CheckoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Amount != 200 || req.Currency != "inr" {
			t.Fatalf("unexpected request body: %+v", req)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CheckoutSession{
			ID:     "cs_1",
			URL:    "https://gateway.example/pay/cs_1",
			Status: SessionUnpaid,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test")
	session, err := c.CreateCheckoutSession(context.Background(), CheckoutRequest{
		Amount:    200,
		Currency:  "inr",
		Reference: "TXN-abc",
	})
	if err != nil {
		t.Fatalf("create session error: %v", err)
	}
	if session.ID != "cs_1" || session.URL == "" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestGetCheckoutSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/checkout/sessions/cs_1":
			json.NewEncoder(w).Encode(CheckoutSession{ID: "cs_1", Status: SessionPaid, PaymentRef: "ref_1"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test")

	session, err := c.GetCheckoutSession(context.Background(), "cs_1")
	if err != nil {
		t.Fatalf("get session error: %v", err)
	}
	if session.Status != SessionPaid || session.PaymentRef != "ref_1" {
		t.Fatalf("unexpected session: %+v", session)
	}

	if _, err := c.GetCheckoutSession(context.Background(), "cs_missing"); err == nil {
		t.Fatal("expected error for missing session")
	}
}

func TestClientNotConfigured(t *testing.T) {
	c := NewClient("", "")
	if _, err := c.CreateCheckoutSession(context.Background(), CheckoutRequest{}); err == nil {
		t.Fatal("expected error for unconfigured client")
	}
}
