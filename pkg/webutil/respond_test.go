package webutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, map[string]string{"hello": "world"})

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type %q", ct)
	}

	var data map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &data)
	if err != nil {
		t.Fatal(err)
	}

	if data["hello"] != "world" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	if RespondError(rec, nil) {
		t.Error("expected false for nil error")
	}

	rec = httptest.NewRecorder()
	if !RespondError(rec, errors.New("omg")) {
		t.Error("expected true for non-nil error")
	}

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}

	if !strings.HasPrefix(rec.Body.String(), "ERROR: ") {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}
