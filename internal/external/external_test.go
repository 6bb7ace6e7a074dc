package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestTwilio_SendSMS(t *testing.T) {
	var gotTo, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotTo = r.PostFormValue("To")
		gotBody = r.PostFormValue("Body")

		if user, pass, ok := r.BasicAuth(); !ok || user != "AC123" || pass != "secret" {
			t.Errorf("Bad basic auth: %s %s", user, pass)
		}

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM456"}`))
	}))
	defer srv.Close()

	client := NewTwilioClient("AC123", "secret", "+15550001111", srv.URL, zap.NewNop())

	sid, err := client.SendSMS(context.Background(), "+15552223333", "reminder text")
	if err != nil {
		t.Fatalf("SendSMS failed: %v", err)
	}
	if sid != "SM456" {
		t.Errorf("Expected SM456, got %s", sid)
	}
	if gotTo != "+15552223333" || gotBody != "reminder text" {
		t.Errorf("Wrong form values: to=%q body=%q", gotTo, gotBody)
	}
}

func TestTwilio_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Authenticate"}`))
	}))
	defer srv.Close()

	client := NewTwilioClient("AC123", "wrong", "+15550001111", srv.URL, zap.NewNop())

	if _, err := client.SendSMS(context.Background(), "+15552223333", "x"); err == nil {
		t.Fatal("Expected error for 401 response")
	}
}

func TestTwilio_Configured(t *testing.T) {
	full := NewTwilioClient("sid", "token", "+1555", "", zap.NewNop())
	if !full.Configured() {
		t.Error("Full credentials should be configured")
	}

	partial := NewTwilioClient("sid", "", "+1555", "", zap.NewNop())
	if partial.Configured() {
		t.Error("Missing token should not be configured")
	}
}

func TestWebhook_RedirectCountsAsDelivered(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Apps Script answers 302 to a script.googleusercontent.com URL
		w.Header().Set("Location", "https://example.com/result")
		w.WriteHeader(http.StatusFound)
	}))
	defer srv.Close()

	client := NewWebhookClient(srv.URL, zap.NewNop())

	err := client.Forward(context.Background(), map[string]string{"email": "a@b.com"})
	if err != nil {
		t.Errorf("302 should count as delivered, got %v", err)
	}
}

func TestWebhook_ServerErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewWebhookClient(srv.URL, zap.NewNop())

	if err := client.Forward(context.Background(), map[string]string{}); err == nil {
		t.Error("Expected error for 500 response")
	}
}

func TestAnthropic_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "key123" {
			t.Errorf("Missing api key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("Missing version header")
		}
		w.Write([]byte(`{"content":[{"type":"text","text":"answer"}]}`))
	}))
	defer srv.Close()

	client := NewAnthropicClient("key123", "", srv.URL, zap.NewNop())

	reply, err := client.Complete(context.Background(), "system", "question", 256)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply != "answer" {
		t.Errorf("Expected answer, got %q", reply)
	}
}

func TestAnthropic_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"content":[],"error":{"message":"bad request"}}`))
	}))
	defer srv.Close()

	client := NewAnthropicClient("key123", "", srv.URL, zap.NewNop())

	if _, err := client.Complete(context.Background(), "", "q", 256); err == nil {
		t.Fatal("Expected error for 400 response")
	}
}
