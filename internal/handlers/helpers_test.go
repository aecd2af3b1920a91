package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondJSON_EncodeFailureWritesNothingFurther(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	// Channels are not JSON-serializable, so the encoder fails after the
	// status line has been written
	respondJSON(rec, http.StatusOK, make(chan int))

	if rec.Code != http.StatusOK {
		t.Errorf("expected the original status 200 to stand, got %d", rec.Code)
	}
	if got := rec.Body.String(); strings.Contains(got, "Failed to encode response") {
		t.Errorf("no error text may follow the committed response, got %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("expected Content-Type application/json, got %q", got)
	}
}

func TestSanitizeErrorMessage_Truncates(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 300)
	got := sanitizeErrorMessage(long)
	if len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Errorf("expected 200 chars plus ellipsis, got %d chars", len(got))
	}

	if got := sanitizeErrorMessage("short"); got != "short" {
		t.Errorf("short messages must pass through unchanged, got %q", got)
	}
}
