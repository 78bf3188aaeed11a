package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"charityevents/models"
)

func seedEvent(d testDeps, e models.Event) {
	d.events.Items[e.ID] = e
}

func TestRegister_MissingNameOrPhone_400(t *testing.T) {
	d := newTestServer(t)
	seedEvent(d, models.Event{ID: 1, Status: models.StatusUpcoming})

	for _, body := range []string{
		`{"phone":"111"}`,
		`{"name":"Jane Doe"}`,
		`{"name":"   ","phone":"111"}`,
	} {
		w := req(d.s, http.MethodPost, "/api/events/1/register", body, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: want 400, got %d (%s)", body, w.Code, w.Body.String())
		}
	}
}

func TestRegister_TicketQuantityBounds(t *testing.T) {
	d := newTestServer(t)
	seedEvent(d, models.Event{ID: 1, Status: models.StatusUpcoming})

	// 0 and 11 are out of range, a non-numeric quantity fails binding.
	for _, body := range []string{
		`{"name":"Jane Doe","phone":"100","ticketQuantity":0}`,
		`{"name":"Jane Doe","phone":"101","ticketQuantity":11}`,
		`{"name":"Jane Doe","phone":"102","ticketQuantity":"two"}`,
	} {
		w := req(d.s, http.MethodPost, "/api/events/1/register", body, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: want 400, got %d (%s)", body, w.Code, w.Body.String())
		}
	}

	// 1 and 10 are inclusive bounds and must be accepted.
	w := req(d.s, http.MethodPost, "/api/events/1/register",
		`{"name":"Jane Doe","phone":"103","ticketQuantity":1}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("quantity 1: want 200, got %d (%s)", w.Code, w.Body.String())
	}
	w = req(d.s, http.MethodPost, "/api/events/1/register",
		`{"name":"John Doe","phone":"104","ticketQuantity":10}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("quantity 10: want 200, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestRegister_DefaultsToOneTicket(t *testing.T) {
	d := newTestServer(t)
	seedEvent(d, models.Event{ID: 1, Status: models.StatusUpcoming})

	w := req(d.s, http.MethodPost, "/api/events/1/register",
		`{"name":"Jane Doe","phone":"111"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d (%s)", w.Code, w.Body.String())
	}

	var resp struct {
		RegistrationID int64 `json:"registrationId"`
		TicketQuantity int   `json:"ticketQuantity"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TicketQuantity != 1 {
		t.Fatalf("want default quantity 1, got %d", resp.TicketQuantity)
	}
	if resp.RegistrationID == 0 {
		t.Fatalf("missing registration id")
	}
	if got := d.events.Items[1].CurrentParticipants; got != 1 {
		t.Fatalf("want current_participants 1, got %d", got)
	}
}

func TestRegister_UnknownEvent_404(t *testing.T) {
	d := newTestServer(t)

	w := req(d.s, http.MethodPost, "/api/events/42/register",
		`{"name":"Jane Doe","phone":"111"}`, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d (%s)", w.Code, w.Body.String())
	}
}

// Scenario: capacity 2, phone "111" takes both slots, phone "222" is refused.
func TestRegister_CapacityExceeded(t *testing.T) {
	d := newTestServer(t)
	seedEvent(d, models.Event{ID: 1, Status: models.StatusUpcoming, MaxParticipants: intPtr(2)})

	w := req(d.s, http.MethodPost, "/api/events/1/register",
		`{"name":"Jane Doe","phone":"111","ticketQuantity":2}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("first registration: want 200, got %d (%s)", w.Code, w.Body.String())
	}
	if got := d.events.Items[1].CurrentParticipants; got != 2 {
		t.Fatalf("want current_participants 2, got %d", got)
	}

	w = req(d.s, http.MethodPost, "/api/events/1/register",
		`{"name":"John Doe","phone":"222","ticketQuantity":1}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("over capacity: want 400, got %d (%s)", w.Code, w.Body.String())
	}
	if got := d.events.Items[1].CurrentParticipants; got != 2 {
		t.Fatalf("failed registration must not change the counter, got %d", got)
	}
}

// Unlimited capacity: max_participants null means no capacity check at all.
func TestRegister_UnlimitedCapacity(t *testing.T) {
	d := newTestServer(t)
	seedEvent(d, models.Event{ID: 2, Status: models.StatusUpcoming})

	for i, body := range []string{
		`{"name":"A","phone":"1","ticketQuantity":10}`,
		`{"name":"B","phone":"2","ticketQuantity":10}`,
		`{"name":"C","phone":"3","ticketQuantity":7}`,
	} {
		w := req(d.s, http.MethodPost, "/api/events/2/register", body, "")
		if w.Code != http.StatusOK {
			t.Fatalf("registration %d: want 200, got %d (%s)", i, w.Code, w.Body.String())
		}
	}
}

func TestRegister_NonUpcomingStatus_400(t *testing.T) {
	d := newTestServer(t)
	seedEvent(d, models.Event{ID: 3, Status: models.StatusCompleted})
	seedEvent(d, models.Event{ID: 4, Status: models.StatusCancelled})
	seedEvent(d, models.Event{ID: 5, Status: models.StatusOngoing})

	for _, id := range []string{"3", "4", "5"} {
		w := req(d.s, http.MethodPost, "/api/events/"+id+"/register",
			`{"name":"Jane Doe","phone":"111"}`, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("event %s: want 400, got %d (%s)", id, w.Code, w.Body.String())
		}
	}
}

func TestRegister_DuplicatePhone_400(t *testing.T) {
	d := newTestServer(t)
	seedEvent(d, models.Event{ID: 1, Status: models.StatusUpcoming, MaxParticipants: intPtr(10)})

	w := req(d.s, http.MethodPost, "/api/events/1/register",
		`{"name":"Jane Doe","phone":"111","ticketQuantity":2}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("first registration: want 200, got %d (%s)", w.Code, w.Body.String())
	}

	w = req(d.s, http.MethodPost, "/api/events/1/register",
		`{"name":"Jane Doe","phone":"111","ticketQuantity":1}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate: want 400, got %d (%s)", w.Code, w.Body.String())
	}

	// The counter only reflects the first registration.
	if got := d.events.Items[1].CurrentParticipants; got != 2 {
		t.Fatalf("want current_participants 2, got %d", got)
	}
}

func TestRegister_StoreFailure_500(t *testing.T) {
	d := newTestServer(t)
	seedEvent(d, models.Event{ID: 1, Status: models.StatusUpcoming})
	d.regs.Err = errForced

	w := req(d.s, http.MethodPost, "/api/events/1/register",
		`{"name":"Jane Doe","phone":"111"}`, "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d (%s)", w.Code, w.Body.String())
	}
}
