package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senku-sen/event-management-system/models"
)

func eventBody(start, end time.Time) map[string]any {
	return map[string]any{
		"title":        "GopherCon PH",
		"description":  "annual conference",
		"startDate":    start.Format(time.RFC3339),
		"endDate":      end.Format(time.RFC3339),
		"location":     "Manila",
		"category":     models.CategoryConference,
		"maxAttendees": 100,
	}
}

func createEvent(t *testing.T, ts *testServer, token string) models.EventWithOwner {
	t.Helper()

	start := time.Now().Add(24 * time.Hour)
	w := ts.do(t, http.MethodPost, "/api/events", token, eventBody(start, start.Add(2*time.Hour)))
	require.Equal(t, http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w)
	var created struct {
		Event models.EventWithOwner `json:"event"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	return created.Event
}

func createEventInGroup(t *testing.T, ts *testServer, token, groupID string) models.EventWithOwner {
	t.Helper()

	start := time.Now().Add(24 * time.Hour)
	body := eventBody(start, start.Add(2*time.Hour))
	body["groupId"] = groupID

	w := ts.do(t, http.MethodPost, "/api/events", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w)
	var created struct {
		Event models.EventWithOwner `json:"event"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	return created.Event
}

func TestEventRoutes_RequireAuth(t *testing.T) {
	ts := newTestServer()
	w := ts.do(t, http.MethodGet, "/api/events", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEventCreate(t *testing.T) {
	ts := newTestServer()
	user, token := ts.seedUser(t, "u@x.com", "secret1", models.RoleUser)

	t.Run("valid event", func(t *testing.T) {
		event := createEvent(t, ts, token)
		assert.Equal(t, models.EventStatusUpcoming, event.Status)
		assert.Equal(t, user.ID, event.CreatedBy)
		require.NotNil(t, event.Owner)
		assert.Equal(t, "u@x.com", event.Owner.Email)
	})

	t.Run("end before start", func(t *testing.T) {
		start := time.Now().Add(24 * time.Hour)
		w := ts.do(t, http.MethodPost, "/api/events", token, eventBody(start, start.Add(-time.Hour)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-positive maxAttendees", func(t *testing.T) {
		start := time.Now().Add(24 * time.Hour)
		body := eventBody(start, start.Add(time.Hour))
		body["maxAttendees"] = 0
		w := ts.do(t, http.MethodPost, "/api/events", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown category", func(t *testing.T) {
		start := time.Now().Add(24 * time.Hour)
		body := eventBody(start, start.Add(time.Hour))
		body["category"] = "party"
		w := ts.do(t, http.MethodPost, "/api/events", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEventUpdate_OwnershipAcrossUsers(t *testing.T) {
	ts := newTestServer()
	_, ownerToken := ts.seedUser(t, "u@x.com", "secret1", models.RoleUser)
	_, strangerToken := ts.seedUser(t, "v@x.com", "secret1", models.RoleUser)
	_, adminToken := ts.seedUser(t, "admin@x.com", "secret1", models.RoleAdmin)

	event := createEvent(t, ts, ownerToken)
	patch := map[string]any{"title": "Renamed"}

	t.Run("stranger gets 403 and the event is unchanged", func(t *testing.T) {
		w := ts.do(t, http.MethodPut, "/api/events/"+event.ID.Hex(), strangerToken, patch)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = ts.do(t, http.MethodGet, "/api/events/"+event.ID.Hex(), strangerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "GopherCon PH")
	})

	t.Run("owner may update", func(t *testing.T) {
		w := ts.do(t, http.MethodPut, "/api/events/"+event.ID.Hex(), ownerToken, patch)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin may update", func(t *testing.T) {
		w := ts.do(t, http.MethodPut, "/api/events/"+event.ID.Hex(), adminToken, map[string]any{"title": "Final"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("stranger may not delete", func(t *testing.T) {
		w := ts.do(t, http.MethodDelete, "/api/events/"+event.ID.Hex(), strangerToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner may delete", func(t *testing.T) {
		w := ts.do(t, http.MethodDelete, "/api/events/"+event.ID.Hex(), ownerToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = ts.do(t, http.MethodGet, "/api/events/"+event.ID.Hex(), ownerToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEventListMine(t *testing.T) {
	ts := newTestServer()
	_, ownerToken := ts.seedUser(t, "u@x.com", "secret1", models.RoleUser)
	_, otherToken := ts.seedUser(t, "v@x.com", "secret1", models.RoleUser)

	createEvent(t, ts, ownerToken)
	createEvent(t, ts, otherToken)

	w := ts.do(t, http.MethodGet, "/api/events/mine", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var got struct {
		Events []models.Event `json:"events"`
		Count  int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 1, got.Count)
}
