package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agrinet-api/models"
)

func setupFeedDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Follow{}, &models.Post{}))
	return db
}

func post(id string, createdAt time.Time) models.Post {
	return models.Post{ID: id, UserID: "u1", CreatedAt: createdAt}
}

func TestCombinePostsDedupesAndSorts(t *testing.T) {
	now := time.Now()

	own := []models.Post{
		post("a", now.Add(-2*time.Hour)),
		post("b", now.Add(-1*time.Hour)),
	}
	followed := []models.Post{
		post("b", now.Add(-1*time.Hour)), // duplicate
		post("c", now.Add(-3*time.Hour)),
		post("d", now),
	}

	combined := CombinePosts(own, followed)

	require.Len(t, combined, 4)
	assert.Equal(t, "d", combined[0].ID)
	assert.Equal(t, "b", combined[1].ID)
	assert.Equal(t, "a", combined[2].ID)
	assert.Equal(t, "c", combined[3].ID)
}

func TestCombinePostsTieBreaksOnID(t *testing.T) {
	ts := time.Now()

	combined := CombinePosts(
		[]models.Post{post("a", ts)},
		[]models.Post{post("z", ts), post("m", ts)},
	)

	require.Len(t, combined, 3)
	assert.Equal(t, "z", combined[0].ID)
	assert.Equal(t, "m", combined[1].ID)
	assert.Equal(t, "a", combined[2].ID)
}

func TestCombinePostsEmptyInputs(t *testing.T) {
	assert.Empty(t, CombinePosts(nil, nil))

	only := []models.Post{post("a", time.Now())}
	assert.Len(t, CombinePosts(only, nil), 1)
	assert.Len(t, CombinePosts(nil, only), 1)
}

func TestResolveOriginalFlattensChain(t *testing.T) {
	db := setupFeedDB(t)
	s := NewFeedService(db)

	root := models.Post{ID: "root", UserID: "u1", Desc: "original"}
	require.NoError(t, db.Create(&root).Error)

	rootID := "root"
	share1 := models.Post{ID: "s1", UserID: "u2", SharedPostID: &rootID}
	require.NoError(t, db.Create(&share1).Error)

	share1ID := "s1"
	share2 := models.Post{ID: "s2", UserID: "u3", SharedPostID: &share1ID}
	require.NoError(t, db.Create(&share2).Error)

	resolved, err := s.ResolveOriginal("s2")
	require.NoError(t, err)
	assert.Equal(t, "root", resolved.ID)
}

func TestResolveOriginalMissingPost(t *testing.T) {
	db := setupFeedDB(t)
	s := NewFeedService(db)

	_, err := s.ResolveOriginal("ghost")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestResolveOriginalDanglingReference(t *testing.T) {
	db := setupFeedDB(t)
	s := NewFeedService(db)

	goneID := "gone"
	share := models.Post{ID: "s1", UserID: "u1", SharedPostID: &goneID}
	require.NoError(t, db.Create(&share).Error)

	resolved, err := s.ResolveOriginal("s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", resolved.ID)
}

func TestTimelinePagination(t *testing.T) {
	db := setupFeedDB(t)
	s := NewFeedService(db)

	require.NoError(t, db.Create(&models.User{ID: "u1", Name: "Juan", Email: "juan@example.com"}).Error)

	now := time.Now()
	for i := 0; i < 25; i++ {
		p := models.Post{
			ID:        string(rune('a'+i)) + "-post",
			UserID:    "u1",
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&p).Error)
	}

	feed, err := s.Timeline("u1", 1, 10)
	require.NoError(t, err)
	assert.Len(t, feed.Posts, 10)
	assert.Equal(t, int64(25), feed.Total)
	assert.Equal(t, 3, feed.TotalPages)
	assert.True(t, feed.HasMore)

	feed, err = s.Timeline("u1", 3, 10)
	require.NoError(t, err)
	assert.Len(t, feed.Posts, 5)
	assert.False(t, feed.HasMore)

	// Past the end returns an empty page, not an error
	feed, err = s.Timeline("u1", 10, 10)
	require.NoError(t, err)
	assert.Empty(t, feed.Posts)
}

func TestTimelineUnknownUser(t *testing.T) {
	db := setupFeedDB(t)
	s := NewFeedService(db)

	_, err := s.Timeline("ghost", 1, 10)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
