package services

import (
	"errors"
	"sort"

	"gorm.io/gorm"

	"agrinet-api/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")
)

// FeedService assembles a user's timeline: their own posts plus posts from
// everyone they follow, with reshares resolved to the original post.
type FeedService struct {
	db *gorm.DB
}

func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{db: db}
}

// Timeline returns the requesting user's feed, newest first.
func (s *FeedService) Timeline(userID string, page, limit int) (*models.FeedResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var follows []models.Follow
	if err := s.db.Where("follower_id = ?", userID).Find(&follows).Error; err != nil {
		return nil, err
	}

	followingIDs := make([]string, 0, len(follows))
	for _, f := range follows {
		followingIDs = append(followingIDs, f.FollowingID)
	}

	var ownPosts []models.Post
	if err := s.db.Preload("User").Where("user_id = ?", userID).Find(&ownPosts).Error; err != nil {
		return nil, err
	}

	var followedPosts []models.Post
	if len(followingIDs) > 0 {
		if err := s.db.Preload("User").Where("user_id IN ?", followingIDs).Find(&followedPosts).Error; err != nil {
			return nil, err
		}
	}

	combined := CombinePosts(ownPosts, followedPosts)

	entries, err := s.resolveShares(combined)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	total := int64(len(entries))
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	start := (page - 1) * limit
	if start > len(entries) {
		start = len(entries)
	}
	end := start + limit
	if end > len(entries) {
		end = len(entries)
	}

	return &models.FeedResponse{
		Posts:      entries[start:end],
		Page:       page,
		Limit:      limit,
		Total:      total,
		HasMore:    page < totalPages,
		TotalPages: totalPages,
	}, nil
}

// CombinePosts merges the two post sets, drops duplicates by ID, and sorts
// newest first. A post reachable both as "own" and "followed" appears once.
func CombinePosts(own, followed []models.Post) []models.Post {
	seen := make(map[string]bool, len(own)+len(followed))
	combined := make([]models.Post, 0, len(own)+len(followed))

	for _, post := range own {
		if !seen[post.ID] {
			seen[post.ID] = true
			combined = append(combined, post)
		}
	}
	for _, post := range followed {
		if !seen[post.ID] {
			seen[post.ID] = true
			combined = append(combined, post)
		}
	}

	sort.SliceStable(combined, func(i, j int) bool {
		if combined[i].CreatedAt.Equal(combined[j].CreatedAt) {
			return combined[i].ID > combined[j].ID
		}
		return combined[i].CreatedAt.After(combined[j].CreatedAt)
	})

	return combined
}

// resolveShares attaches the original post payload to every reshare in one
// batch lookup. Reshares always point at the ultimate original (see
// ResolveOriginal), so one level is enough.
func (s *FeedService) resolveShares(posts []models.Post) ([]models.TimelinePost, error) {
	sharedIDs := make([]string, 0)
	for _, post := range posts {
		if post.SharedPostID != nil {
			sharedIDs = append(sharedIDs, *post.SharedPostID)
		}
	}

	originals := make(map[string]models.Post, len(sharedIDs))
	if len(sharedIDs) > 0 {
		var fetched []models.Post
		if err := s.db.Preload("User").Where("id IN ?", sharedIDs).Find(&fetched).Error; err != nil {
			return nil, err
		}
		for _, post := range fetched {
			originals[post.ID] = post
		}
	}

	entries := make([]models.TimelinePost, 0, len(posts))
	for _, post := range posts {
		entry := models.TimelinePost{Post: post}
		if post.SharedPostID != nil {
			if original, ok := originals[*post.SharedPostID]; ok {
				entry.SharedPost = &models.SharedPostPayload{
					ID:         original.ID,
					UserID:     original.UserID,
					AuthorName: original.User.Name,
					Desc:       original.Desc,
					Image:      original.Image,
					CreatedAt:  original.CreatedAt,
				}
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// ResolveOriginal follows a reshare chain to its root post so a reshare of
// a reshare is stored against the ultimate original. The walk is bounded to
// guard against reference cycles.
func (s *FeedService) ResolveOriginal(postID string) (*models.Post, error) {
	const maxDepth = 8

	var post models.Post
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	for depth := 0; depth < maxDepth && post.SharedPostID != nil; depth++ {
		var parent models.Post
		if err := s.db.First(&parent, "id = ?", *post.SharedPostID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Dangling reference; treat the reshare itself as the root.
				return &post, nil
			}
			return nil, err
		}
		post = parent
	}

	return &post, nil
}
