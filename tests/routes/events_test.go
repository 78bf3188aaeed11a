package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"charityevents/models"
)

func TestGetEvents_PublishedOnly(t *testing.T) {
	d := newTestServer(t)
	d.events.Items[1] = models.Event{ID: 1, Status: models.StatusUpcoming}
	d.events.Items[2] = models.Event{ID: 2, Status: models.StatusOngoing}
	d.events.Items[3] = models.Event{ID: 3, Status: models.StatusCompleted}
	d.events.Items[4] = models.Event{ID: 4, Status: models.StatusCancelled}

	w := req(d.s, http.MethodGet, "/api/events", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}

	var events []models.Event
	if err := json.Unmarshal(w.Body.Bytes(), &events); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("want 2 published events, got %d", len(events))
	}
}

func TestGetEvent_UnknownID_404(t *testing.T) {
	d := newTestServer(t)

	w := req(d.s, http.MethodGet, "/api/events/7", "", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
}

func TestGetEvent_MalformedID_400(t *testing.T) {
	d := newTestServer(t)

	w := req(d.s, http.MethodGet, "/api/events/abc", "", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}

func TestSearchEvents_FilterPassthrough(t *testing.T) {
	d := newTestServer(t)
	d.events.Items[1] = models.Event{ID: 1, Category: "Gala", Date: "2026-10-01"}
	d.events.Items[2] = models.Event{ID: 2, Category: "Fun Run", Date: "2026-10-01"}

	w := req(d.s, http.MethodGet, "/api/events/search?category=Gala&date=2026-10-01", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	var events []models.Event
	if err := json.Unmarshal(w.Body.Bytes(), &events); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(events) != 1 || events[0].ID != 1 {
		t.Fatalf("want only event 1, got %+v", events)
	}
}

func TestEventRegistrations_NewestFirst(t *testing.T) {
	d := newTestServer(t)
	d.events.Items[1] = models.Event{ID: 1, Status: models.StatusUpcoming}

	for _, body := range []string{
		`{"name":"A","phone":"1"}`,
		`{"name":"B","phone":"2"}`,
		`{"name":"C","phone":"3"}`,
	} {
		if w := req(d.s, http.MethodPost, "/api/events/1/register", body, ""); w.Code != http.StatusOK {
			t.Fatalf("seed registration: got %d (%s)", w.Code, w.Body.String())
		}
	}

	w := req(d.s, http.MethodGet, "/api/events/1/registrations", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	var regs []models.Registration
	if err := json.Unmarshal(w.Body.Bytes(), &regs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(regs) != 3 {
		t.Fatalf("want 3 registrations, got %d", len(regs))
	}
	if regs[0].ParticipantName != "C" || regs[2].ParticipantName != "A" {
		t.Fatalf("want newest first, got %+v", regs)
	}
}

func TestPublicEndpoints_StoreFailure_500(t *testing.T) {
	d := newTestServer(t)
	d.events.Err = errForced
	d.regs.Err = errForced

	for _, path := range []string{
		"/api/events",
		"/api/events/upcoming",
		"/api/events/search",
		"/api/events/1",
		"/api/events/1/registrations",
		"/api/categories",
	} {
		w := req(d.s, http.MethodGet, path, "", "")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("%s: want 500, got %d", path, w.Code)
		}
	}
}
