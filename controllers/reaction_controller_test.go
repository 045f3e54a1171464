package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agrinet-api/models"
)

func newReactionRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	rc := NewReactionController(db)

	r := gin.New()
	api := r.Group("/api")
	api.Use(asUser(userID, userID+"@example.com"))
	{
		api.PUT("/posts/:id/react", rc.ReactToPost)
		api.GET("/posts/:id/reactions", rc.GetPostReactions)
		api.PUT("/comments/:id/react", rc.ReactToComment)
	}
	return r
}

func TestReactToPostSetReplaceClear(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "u1", "Juan", "juan@example.com")
	createTestPost(t, db, "p1", "u1", "Harvest day")
	r := newReactionRouter(db, "u1")

	w := performRequest(r, http.MethodPut, "/api/posts/p1/react", gin.H{"type": "love"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Reaction added", decodeBody(t, w)["message"])

	// Replacing keeps a single row and does not bump the counter
	w = performRequest(r, http.MethodPut, "/api/posts/p1/react", gin.H{"type": "wow"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Reaction updated", decodeBody(t, w)["message"])

	var post models.Post
	require.NoError(t, db.First(&post, "id = ?", "p1").Error)
	assert.Equal(t, 1, post.LikesCount)

	var count int64
	db.Model(&models.Reaction{}).Where("post_id = ?", "p1").Count(&count)
	assert.Equal(t, int64(1), count)

	// Sending the held type clears it
	w = performRequest(r, http.MethodPut, "/api/posts/p1/react", gin.H{"type": "wow"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Reaction removed", decodeBody(t, w)["message"])

	require.NoError(t, db.First(&post, "id = ?", "p1").Error)
	assert.Equal(t, 0, post.LikesCount)
}

func TestReactInvalidType(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "u1", "Juan", "juan@example.com")
	createTestPost(t, db, "p1", "u1", "Harvest day")
	r := newReactionRouter(db, "u1")

	w := performRequest(r, http.MethodPut, "/api/posts/p1/react", gin.H{"type": "meh"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReactToMissingTargets(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "u1", "Juan", "juan@example.com")
	r := newReactionRouter(db, "u1")

	w := performRequest(r, http.MethodPut, "/api/posts/ghost/react", gin.H{"type": "like"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(r, http.MethodPut, "/api/comments/ghost/react", gin.H{"type": "like"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReactionsAreIndependentPerUser(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "u1", "Juan", "juan@example.com")
	createTestUser(t, db, "u2", "Maria", "maria@example.com")
	createTestPost(t, db, "p1", "u1", "Harvest day")

	w := performRequest(newReactionRouter(db, "u1"), http.MethodPut, "/api/posts/p1/react", gin.H{"type": "like"})
	require.Equal(t, http.StatusOK, w.Code)
	w = performRequest(newReactionRouter(db, "u2"), http.MethodPut, "/api/posts/p1/react", gin.H{"type": "love"})
	require.Equal(t, http.StatusOK, w.Code)

	var post models.Post
	require.NoError(t, db.First(&post, "id = ?", "p1").Error)
	assert.Equal(t, 2, post.LikesCount)

	w = performRequest(newReactionRouter(db, "u1"), http.MethodGet, "/api/posts/p1/reactions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reactions []models.Reaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reactions))
	require.Len(t, reactions, 2)
	assert.Equal(t, "Juan", reactions[0].User.Name)
}
