package handlers

import (
	"sort"
	"strings"
	"time"

	"github.com/chirpnet/backend/internal/models"
	"gorm.io/gorm"
)

// In-memory repository fakes. They honor the same contracts as the
// Postgres implementations: gorm.ErrRecordNotFound for misses and
// gorm.ErrDuplicatedKey where a unique index would fire.

type fakeUserRepo struct {
	nextID uint
	users  map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[uint]*models.User{}}
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.nextID
	r.nextID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByUsernameOrName(name string) (*models.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Username, name) || strings.EqualFold(user.Name, name) {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) SearchUsers(query string, limit int) ([]models.User, error) {
	q := strings.ToLower(query)
	var ids []uint
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.User
	for _, id := range ids {
		user := r.users[id]
		if strings.Contains(strings.ToLower(user.Username), q) || strings.Contains(strings.ToLower(user.Name), q) {
			out = append(out, *user)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeUserRepo) GetUsersWithActivity(limit int) ([]models.User, error) {
	// The Postgres implementation joins on posts; tests that need activity
	// data wire it through fakePostRepo instead.
	return nil, nil
}

type fakePostRepo struct {
	nextID   uint
	seq      int
	posts    map[uint]*models.Post
	users    *fakeUserRepo
	likes    *fakeLikeRepo
	comments *fakeCommentRepo
}

func newFakePostRepo(users *fakeUserRepo, likes *fakeLikeRepo, comments *fakeCommentRepo) *fakePostRepo {
	return &fakePostRepo{nextID: 1, posts: map[uint]*models.Post{}, users: users, likes: likes, comments: comments}
}

var fakeEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func (r *fakePostRepo) CreatePost(post *models.Post) error {
	post.ID = r.nextID
	r.nextID++
	post.CreatedAt = fakeEpoch.Add(time.Duration(r.seq) * time.Second)
	post.UpdatedAt = post.CreatedAt
	r.seq++
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) GetPostByID(id uint) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *post
	if user, err := r.users.GetUserByID(post.UserID); err == nil {
		cp.User = user
	}
	return &cp, nil
}

func (r *fakePostRepo) GetAllPosts() ([]models.Post, error) {
	var out []models.Post
	for _, post := range r.posts {
		cp := *post
		if user, err := r.users.GetUserByID(post.UserID); err == nil {
			cp.User = user
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePostRepo) GetPostsByUserID(userID uint) ([]models.Post, error) {
	all, _ := r.GetAllPosts()
	var out []models.Post
	for _, post := range all {
		if post.UserID == userID {
			out = append(out, post)
		}
	}
	return out, nil
}

func (r *fakePostRepo) UpdatePost(post *models.Post) error {
	if _, ok := r.posts[post.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	post.UpdatedAt = time.Now()
	cp := *post
	cp.User = nil
	r.posts[post.ID] = &cp
	return nil
}

// DeletePost mirrors the Postgres implementation's explicit cascade:
// comments, then likes, then the post row.
func (r *fakePostRepo) DeletePost(id uint) error {
	if r.comments != nil {
		r.comments.deleteByPostID(id)
	}
	if r.likes != nil {
		r.likes.deleteByPostID(id)
	}
	delete(r.posts, id)
	return nil
}

type fakeLikeRepo struct {
	nextID uint
	likes  []models.Like

	// dupOnCreate simulates losing a create race: the row exists (the
	// winner inserted it) and the insert reports a unique violation.
	dupOnCreate bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{nextID: 1}
}

func (r *fakeLikeRepo) CreateLike(like *models.Like) error {
	for _, l := range r.likes {
		if l.PostID == like.PostID && l.UserID == like.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	like.ID = r.nextID
	r.nextID++
	like.CreatedAt = time.Now()
	r.likes = append(r.likes, *like)
	if r.dupOnCreate {
		return gorm.ErrDuplicatedKey
	}
	return nil
}

func (r *fakeLikeRepo) DeleteLike(postID, userID uint) error {
	for i, l := range r.likes {
		if l.PostID == postID && l.UserID == userID {
			r.likes = append(r.likes[:i], r.likes[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeLikeRepo) GetLike(postID, userID uint) (*models.Like, error) {
	for i, l := range r.likes {
		if l.PostID == postID && l.UserID == userID {
			return &r.likes[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeLikeRepo) GetLikesCountByPostID(postID uint) (int64, error) {
	var count int64
	for _, l := range r.likes {
		if l.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (r *fakeLikeRepo) deleteByPostID(postID uint) {
	var kept []models.Like
	for _, l := range r.likes {
		if l.PostID != postID {
			kept = append(kept, l)
		}
	}
	r.likes = kept
}

type fakeCommentRepo struct {
	nextID   uint
	seq      int
	comments []models.Comment
	users    *fakeUserRepo
}

func newFakeCommentRepo(users *fakeUserRepo) *fakeCommentRepo {
	return &fakeCommentRepo{nextID: 1, users: users}
}

func (r *fakeCommentRepo) CreateComment(comment *models.Comment) error {
	comment.ID = r.nextID
	r.nextID++
	comment.CreatedAt = fakeEpoch.Add(time.Duration(r.seq) * time.Second)
	comment.UpdatedAt = comment.CreatedAt
	r.seq++
	cp := *comment
	cp.User = nil
	r.comments = append(r.comments, cp)
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(id uint) (*models.Comment, error) {
	for _, comment := range r.comments {
		if comment.ID == id {
			cp := comment
			if user, err := r.users.GetUserByID(comment.UserID); err == nil {
				cp.User = user
			}
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCommentRepo) GetCommentsByPostID(postID uint) ([]models.Comment, error) {
	var out []models.Comment
	for _, comment := range r.comments {
		if comment.PostID == postID {
			cp := comment
			if user, err := r.users.GetUserByID(comment.UserID); err == nil {
				cp.User = user
			}
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeCommentRepo) deleteByPostID(postID uint) {
	var kept []models.Comment
	for _, comment := range r.comments {
		if comment.PostID != postID {
			kept = append(kept, comment)
		}
	}
	r.comments = kept
}
