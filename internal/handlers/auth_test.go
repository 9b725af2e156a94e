package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"crockpot_twin/internal/service"
)

func TestAuthHandlers_SignUp(t *testing.T) {
	auth := &mockAuth{signUpID: 5}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := doRequest(r, http.MethodPost, "/auth/sign-up",
		bytes.NewBufferString(`{"username":"alice","password":"s3cr3t"}`), "")
	if w.Code != http.StatusOK {
		t.Fatalf("sign-up status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal sign-up: %v", err)
	}
	if resp.ID != 5 {
		t.Fatalf("expected id 5, got %d", resp.ID)
	}
	if auth.lastSignUpUsername != "alice" || auth.lastSignUpPassword != "s3cr3t" {
		t.Fatalf("credentials not forwarded: %q/%q", auth.lastSignUpUsername, auth.lastSignUpPassword)
	}

	// Missing fields → 400
	w = doRequest(r, http.MethodPost, "/auth/sign-up",
		bytes.NewBufferString(`{"username":"alice"}`), "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", w.Code)
	}

	// Service failure → 400
	auth.signUpErr = errors.New("username taken")
	w = doRequest(r, http.MethodPost, "/auth/sign-up",
		bytes.NewBufferString(`{"username":"alice","password":"s3cr3t"}`), "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for service error, got %d", w.Code)
	}
}

func TestAuthHandlers_SignIn(t *testing.T) {
	auth := &mockAuth{genTokenToken: "jwt-token"}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := doRequest(r, http.MethodPost, "/auth/sign-in",
		bytes.NewBufferString(`{"username":"alice","password":"s3cr3t"}`), "")
	if w.Code != http.StatusOK {
		t.Fatalf("sign-in status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal sign-in: %v", err)
	}
	if resp.Token != "jwt-token" {
		t.Fatalf("expected token, got %q", resp.Token)
	}

	// Bad credentials → 401, no token in body
	auth.genTokenErr = errors.New("invalid password")
	w = doRequest(r, http.MethodPost, "/auth/sign-in",
		bytes.NewBufferString(`{"username":"alice","password":"wrong"}`), "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad credentials, got %d", w.Code)
	}
}
