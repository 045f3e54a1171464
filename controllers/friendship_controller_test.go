package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agrinet-api/models"
)

func newFriendshipRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	fc := NewFriendshipController(db)

	r := gin.New()
	friendships := r.Group("/api/friendships")
	friendships.Use(asUser(userID, userID+"@example.com"))
	{
		friendships.POST("/request/:user_id", fc.SendFriendRequest)
		friendships.PUT("/:id/accept", fc.AcceptFriendRequest)
		friendships.PUT("/:id/reject", fc.RejectFriendRequest)
		friendships.POST("/block/:user_id", fc.BlockUser)
		friendships.DELETE("/remove/:user_id", fc.RemoveFriend)
		friendships.GET("/friends", fc.GetFriends)
		friendships.GET("/pending", fc.GetPendingRequests)
	}
	return r
}

func pendingRequestID(t *testing.T, db *gorm.DB, a, b string) uint {
	t.Helper()

	u1, u2 := a, b
	if u1 > u2 {
		u1, u2 = u2, u1
	}
	var f models.Friendship
	require.NoError(t, db.Where("user_id1 = ? AND user_id2 = ?", u1, u2).First(&f).Error)
	return f.ID
}

func TestFriendRequestLifecycle(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "u1", "Juan", "juan@example.com")
	createTestUser(t, db, "u2", "Maria", "maria@example.com")

	sender := newFriendshipRouter(db, "u1")
	receiver := newFriendshipRouter(db, "u2")

	w := performRequest(sender, http.MethodPost, "/api/friendships/request/u2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Duplicate request refused
	w = performRequest(sender, http.MethodPost, "/api/friendships/request/u2", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// The same pair from the other side is also a duplicate
	w = performRequest(receiver, http.MethodPost, "/api/friendships/request/u1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	id := pendingRequestID(t, db, "u1", "u2")

	// The sender cannot accept their own request
	w = performRequest(sender, http.MethodPut, fmt.Sprintf("/api/friendships/%d/accept", id), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The receiver sees it pending and accepts
	w = performRequest(receiver, http.MethodGet, "/api/friendships/pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pending []models.Friendship
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	require.Len(t, pending, 1)

	w = performRequest(receiver, http.MethodPut, fmt.Sprintf("/api/friendships/%d/accept", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Both sides now list each other as friends
	for router, friend := range map[*gin.Engine]string{sender: "u2", receiver: "u1"} {
		w = performRequest(router, http.MethodGet, "/api/friendships/friends", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var friends []models.User
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &friends))
		require.Len(t, friends, 1)
		assert.Equal(t, friend, friends[0].ID)
	}

	// Removing the friendship deletes the row
	w = performRequest(sender, http.MethodDelete, "/api/friendships/remove/u2", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Friendship{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRejectFriendRequest(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "u1", "Juan", "juan@example.com")
	createTestUser(t, db, "u2", "Maria", "maria@example.com")

	sender := newFriendshipRouter(db, "u1")
	receiver := newFriendshipRouter(db, "u2")

	w := performRequest(sender, http.MethodPost, "/api/friendships/request/u2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	id := pendingRequestID(t, db, "u1", "u2")
	w = performRequest(receiver, http.MethodPut, fmt.Sprintf("/api/friendships/%d/reject", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Rejection clears the row so a new request can be sent
	w = performRequest(sender, http.MethodPost, "/api/friendships/request/u2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBlockPreventsRequests(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "u1", "Juan", "juan@example.com")
	createTestUser(t, db, "u2", "Maria", "maria@example.com")

	blocker := newFriendshipRouter(db, "u1")
	blocked := newFriendshipRouter(db, "u2")

	w := performRequest(blocker, http.MethodPost, "/api/friendships/block/u2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(blocked, http.MethodPost, "/api/friendships/request/u1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performRequest(blocker, http.MethodPost, "/api/friendships/request/u2", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFriendRequestToUnknownOrSelf(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "u1", "Juan", "juan@example.com")
	r := newFriendshipRouter(db, "u1")

	w := performRequest(r, http.MethodPost, "/api/friendships/request/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(r, http.MethodPost, "/api/friendships/request/u1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
