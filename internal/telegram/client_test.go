package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendMessageReturnsMessageID(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"ok": true, "result": {"message_id": 42}}`))
	}))
	defer server.Close()

	client := NewWithBaseURL("TESTTOKEN", server.URL)
	id, err := client.SendMessage(context.Background(), 7, "hello")
	if err != nil {
		t.Fatalf("send message: %v", err)
	}
	if id != 42 {
		t.Fatalf("message id: got %d, want 42", id)
	}
	if gotPath != "/botTESTTOKEN/sendMessage" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotBody["chat_id"] != float64(7) || gotBody["text"] != "hello" {
		t.Fatalf("unexpected payload: %v", gotBody)
	}
}

func TestAPIErrorSurfacesDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok": false, "description": "Bad Request: chat not found"}`))
	}))
	defer server.Close()

	client := NewWithBaseURL("TESTTOKEN", server.URL)
	_, err := client.SendMessage(context.Background(), 7, "hello")
	if err == nil || !strings.Contains(err.Error(), "chat not found") {
		t.Fatalf("expected API error with description, got %v", err)
	}
}

func TestDeleteMessage(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"ok": true, "result": true}`))
	}))
	defer server.Close()

	client := NewWithBaseURL("TESTTOKEN", server.URL)
	if err := client.DeleteMessage(context.Background(), 7, 42); err != nil {
		t.Fatalf("delete message: %v", err)
	}
	if gotBody["chat_id"] != float64(7) || gotBody["message_id"] != float64(42) {
		t.Fatalf("unexpected payload: %v", gotBody)
	}
}

func TestSendTyping(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"ok": true, "result": true}`))
	}))
	defer server.Close()

	client := NewWithBaseURL("TESTTOKEN", server.URL)
	if err := client.SendTyping(context.Background(), 7); err != nil {
		t.Fatalf("send typing: %v", err)
	}
	if gotBody["action"] != "typing" {
		t.Fatalf("unexpected payload: %v", gotBody)
	}
}

func TestSetWebhook(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"ok": true, "result": true}`))
	}))
	defer server.Close()

	client := NewWithBaseURL("TESTTOKEN", server.URL)
	if err := client.SetWebhook(context.Background(), "https://bot.example.com/webhook/TESTTOKEN"); err != nil {
		t.Fatalf("set webhook: %v", err)
	}
	if gotBody["url"] != "https://bot.example.com/webhook/TESTTOKEN" {
		t.Fatalf("unexpected payload: %v", gotBody)
	}
}
