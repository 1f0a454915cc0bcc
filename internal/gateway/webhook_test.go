package gateway

import "testing"

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"type":"checkout.session.completed"}`)
	secret := "whsec_test"

	sig := Sign(payload, secret)
	if !VerifySignature(payload, sig, secret) {
		t.Fatal("valid signature rejected")
	}
	if VerifySignature(payload, sig, "other_secret") {
		t.Fatal("signature accepted under wrong secret")
	}
	if VerifySignature([]byte(`{"type":"tampered"}`), sig, secret) {
		t.Fatal("signature accepted for tampered payload")
	}
	if VerifySignature(payload, "", secret) {
		t.Fatal("empty signature accepted")
	}
	if VerifySignature(payload, sig, "") {
		t.Fatal("empty secret accepted")
	}
}

func TestParseEvent(t *testing.T) {
	payload := []byte(`{"type":"checkout.session.completed","data":{"id":"cs_1","payment_status":"paid","payment_ref":"ref_1"}}`)
	secret := "whsec_test"

	ev, err := ParseEvent(payload, Sign(payload, secret), secret)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if ev.Type != EventCheckoutCompleted {
		t.Fatalf("unexpected type: %s", ev.Type)
	}
	if ev.Session.ID != "cs_1" || ev.Session.Status != SessionPaid {
		t.Fatalf("unexpected session: %+v", ev.Session)
	}

	if _, err := ParseEvent(payload, "bad", secret); err == nil {
		t.Fatal("expected rejection of unverified payload")
	}
}
