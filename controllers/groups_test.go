package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senku-sen/event-management-system/models"
)

func createGroup(t *testing.T, ts *testServer, token, visibility string) models.Group {
	t.Helper()

	w := ts.do(t, http.MethodPost, "/api/groups", token, map[string]any{
		"name":        "G",
		"description": "desc desc desc",
		"visibility":  visibility,
		"maxEvents":   5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w)
	var created struct {
		Group models.Group `json:"group"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	return created.Group
}

func TestGroupCreate(t *testing.T) {
	ts := newTestServer()
	admin, adminToken := ts.seedUser(t, "admin@x.com", "secret1", models.RoleAdmin)
	_, userToken := ts.seedUser(t, "u@x.com", "secret1", models.RoleUser)

	t.Run("non-admin is forbidden", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/groups", userToken, map[string]any{
			"name": "G", "description": "d",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin creates; createdBy is the actor even when the client supplies one", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/groups", adminToken, map[string]any{
			"name":        "G",
			"description": "desc desc desc",
			"visibility":  models.VisibilityPrivate,
			"maxEvents":   5,
			"createdBy":   "000000000000000000000000",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		env := decodeEnvelope(t, w)
		var created struct {
			Group models.Group `json:"group"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &created))
		assert.Equal(t, admin.ID, created.Group.CreatedBy)
		assert.Equal(t, models.VisibilityPrivate, created.Group.Visibility)
		assert.Equal(t, 5, created.Group.MaxEvents)
	})
}

func TestGroupList_VisibilityScoped(t *testing.T) {
	ts := newTestServer()
	_, adminToken := ts.seedUser(t, "admin@x.com", "secret1", models.RoleAdmin)
	_, userToken := ts.seedUser(t, "u@x.com", "secret1", models.RoleUser)

	createGroup(t, ts, adminToken, models.VisibilityPublic)
	private := createGroup(t, ts, adminToken, models.VisibilityPrivate)

	t.Run("non-admin sees only public groups", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/groups", userToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		env := decodeEnvelope(t, w)
		var got struct {
			Groups []models.GroupWithDetails `json:"groups"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &got))
		require.Len(t, got.Groups, 1)
		assert.Equal(t, models.VisibilityPublic, got.Groups[0].Visibility)
	})

	t.Run("admin sees all", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/groups", adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		env := decodeEnvelope(t, w)
		var got struct {
			Groups []models.GroupWithDetails `json:"groups"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got.Groups, 2)
	})

	t.Run("non-admin fetching a private group by id gets 404", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/groups/"+private.ID.Hex(), userToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("admin fetching the private group succeeds", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/groups/"+private.ID.Hex(), adminToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGroupUpdateDelete_AdminOnly(t *testing.T) {
	ts := newTestServer()
	_, adminToken := ts.seedUser(t, "admin@x.com", "secret1", models.RoleAdmin)
	_, userToken := ts.seedUser(t, "u@x.com", "secret1", models.RoleUser)

	group := createGroup(t, ts, adminToken, models.VisibilityPublic)

	t.Run("non-admin update is forbidden", func(t *testing.T) {
		w := ts.do(t, http.MethodPut, "/api/groups/"+group.ID.Hex(), userToken, map[string]any{"name": "X"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin update succeeds", func(t *testing.T) {
		w := ts.do(t, http.MethodPut, "/api/groups/"+group.ID.Hex(), adminToken, map[string]any{"name": "X"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin delete succeeds, repeat is 404", func(t *testing.T) {
		w := ts.do(t, http.MethodDelete, "/api/groups/"+group.ID.Hex(), adminToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = ts.do(t, http.MethodDelete, "/api/groups/"+group.ID.Hex(), adminToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGroupEventsFanOut(t *testing.T) {
	ts := newTestServer()
	_, adminToken := ts.seedUser(t, "admin@x.com", "secret1", models.RoleAdmin)
	_, userToken := ts.seedUser(t, "u@x.com", "secret1", models.RoleUser)

	group := createGroup(t, ts, adminToken, models.VisibilityPublic)

	// attach an event to the group
	event := createEventInGroup(t, ts, userToken, group.ID.Hex())

	w := ts.do(t, http.MethodGet, "/api/groups/"+group.ID.Hex(), userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var got struct {
		Group models.GroupWithDetails `json:"group"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got.Group.Events, 1)
	assert.Equal(t, event.ID, got.Group.Events[0].ID)
	require.NotNil(t, got.Group.Owner)
	assert.Equal(t, "admin@x.com", got.Group.Owner.Email)
}
