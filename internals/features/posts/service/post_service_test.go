package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	AdminModel "ardu_backend/internals/features/admins/model"
	"ardu_backend/internals/features/posts/model"
	UserModel "ardu_backend/internals/features/users/user/model"
)

// fakeMedia: pengganti Cloudinary untuk test, tidak pernah buka file.
type fakeMedia struct {
	uploads     int
	destroyed   []string
	failDestroy bool
}

func (f *fakeMedia) UploadMedia(ctx context.Context, fh *multipart.FileHeader) (string, string, error) {
	f.uploads++
	return "https://cdn.test/image/upload/v1234/ardu_media/media1.webp", "ardu_media/media1", nil
}

func (f *fakeMedia) Destroy(ctx context.Context, publicID, resourceType string) error {
	f.destroyed = append(f.destroyed, publicID)
	if f.failDestroy {
		return errors.New("cloudinary down")
	}
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // :memory: per koneksi

	require.NoError(t, db.AutoMigrate(
		&UserModel.UserModel{},
		&AdminModel.AdminModel{},
		&model.PostModel{},
		&model.CommentModel{},
		&model.ReactionModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, email, role string) *UserModel.UserModel {
	t.Helper()
	user := UserModel.UserModel{
		UserName:       username,
		Name:           username,
		Email:          email,
		MobileNumber:   "08" + username,
		PasswordHash:   "x",
		Role:           role,
		ApprovalStatus: UserModel.ApprovalApproved,
		IsActive:       true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func testFileHeader() *multipart.FileHeader {
	return &multipart.FileHeader{Filename: "media1.jpg", Size: 1024}
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func TestCreateStoryAutoApproved(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, &fakeMedia{})
	user := seedUser(t, db, "budi", "budi@example.com", "USER")

	post, err := svc.CreatePost(context.Background(), user.ID, testFileHeader(), "cerita hari ini", true)
	require.NoError(t, err)

	assert.Equal(t, model.PostTypeStory, post.PostType)
	assert.True(t, post.PostIsApproved)
	assert.WithinDuration(t, time.Now().Add(model.StoryTTL), post.PostExpiresAt, 5*time.Second)
}

func TestCreatePostMemberPendingAdminApproved(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, &fakeMedia{})

	member := seedUser(t, db, "budi", "budi@example.com", "USER")
	adminRole := seedUser(t, db, "siti", "siti@example.com", "admin") // role lama lowercase

	post, err := svc.CreatePost(context.Background(), member.ID, testFileHeader(), "", false)
	require.NoError(t, err)
	assert.False(t, post.PostIsApproved, "post member harus menunggu moderasi")
	assert.Equal(t, model.PostTypePost, post.PostType)
	assert.WithinDuration(t, time.Now().Add(model.PostTTL), post.PostExpiresAt, 5*time.Second)

	post, err = svc.CreatePost(context.Background(), adminRole.ID, testFileHeader(), "", false)
	require.NoError(t, err)
	assert.True(t, post.PostIsApproved, "role admin (case-insensitive) langsung approved")
}

func TestCreatePostAdminsTableEmailCountsAsAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, &fakeMedia{})

	// Role USER tapi email-nya terdaftar di tabel admins
	user := seedUser(t, db, "tono", "tono@example.com", "USER")
	require.NoError(t, db.Create(&AdminModel.AdminModel{
		Name:         "Tono",
		Email:        "tono@example.com",
		MobileNumber: "0811",
		PasswordHash: "x",
	}).Error)

	post, err := svc.CreatePost(context.Background(), user.ID, testFileHeader(), "", false)
	require.NoError(t, err)
	assert.True(t, post.PostIsApproved)
}

func TestCreatePostValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, &fakeMedia{})
	user := seedUser(t, db, "budi", "budi@example.com", "USER")

	_, err := svc.CreatePost(context.Background(), user.ID, nil, "", false)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))

	_, err = svc.CreatePost(context.Background(), uuid.New(), testFileHeader(), "", false)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

func TestGetVisiblePostsFiltersPendingAndExpired(t *testing.T) {
	db := newTestDB(t)
	media := &fakeMedia{}
	svc := NewPostService(db, media)
	user := seedUser(t, db, "budi", "budi@example.com", "USER")

	visible, err := svc.CreatePost(context.Background(), user.ID, testFileHeader(), "story aktif", true)
	require.NoError(t, err)

	pending, err := svc.CreatePost(context.Background(), user.ID, testFileHeader(), "belum approved", false)
	require.NoError(t, err)

	// Story yang sudah lewat 24 jam: mundurkan expiry-nya langsung di DB
	expired, err := svc.CreatePost(context.Background(), user.ID, testFileHeader(), "story lama", true)
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.PostModel{}).
		Where("post_id = ?", expired.PostID).
		Update("post_expires_at", time.Now().Add(-time.Minute)).Error)

	posts, err := svc.GetVisiblePosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, visible.PostID, posts[0].PostID)

	pendings, err := svc.GetPendingPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, pendings, 1)
	assert.Equal(t, pending.PostID, pendings[0].PostID)
}

func TestSetApprovalMakesPostVisible(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, &fakeMedia{})
	user := seedUser(t, db, "budi", "budi@example.com", "USER")

	post, err := svc.CreatePost(context.Background(), user.ID, testFileHeader(), "", false)
	require.NoError(t, err)
	require.False(t, post.PostIsApproved)

	_, err = svc.SetApproval(context.Background(), post.PostID, true)
	require.NoError(t, err)

	posts, err := svc.GetVisiblePosts(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestAddReactionUpsertKeepsOneRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, &fakeMedia{})
	user := seedUser(t, db, "budi", "budi@example.com", "USER")

	post, err := svc.CreatePost(context.Background(), user.ID, testFileHeader(), "", true)
	require.NoError(t, err)

	first, err := svc.AddReaction(context.Background(), post.PostID, "budi", "LIKE")
	require.NoError(t, err)
	assert.Equal(t, "LIKE", first.ReactionType)

	second, err := svc.AddReaction(context.Background(), post.PostID, "budi", "DISLIKE")
	require.NoError(t, err)
	assert.Equal(t, "DISLIKE", second.ReactionType)

	var count int64
	require.NoError(t, db.Model(&model.ReactionModel{}).
		Where("reaction_post_id = ?", post.PostID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count, "reaksi lama harus diganti, bukan ditambah")
}

func TestReactionSummary(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, &fakeMedia{})
	budi := seedUser(t, db, "budi", "budi@example.com", "USER")
	seedUser(t, db, "siti", "siti@example.com", "USER")

	post, err := svc.CreatePost(context.Background(), budi.ID, testFileHeader(), "", true)
	require.NoError(t, err)

	_, err = svc.AddReaction(context.Background(), post.PostID, "budi", "LIKE")
	require.NoError(t, err)
	_, err = svc.AddReaction(context.Background(), post.PostID, "siti", "LOVE")
	require.NoError(t, err)

	summary, err := svc.ReactionSummary(context.Background(), post.PostID, "siti")
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Total)
	assert.Equal(t, int64(1), summary.Counts["LIKE"])
	assert.Equal(t, int64(1), summary.Counts["LOVE"])
	require.NotNil(t, summary.UserReaction)
	assert.Equal(t, "LOVE", *summary.UserReaction)

	// Tanpa login → UserReaction nil
	anon, err := svc.ReactionSummary(context.Background(), post.PostID, "")
	require.NoError(t, err)
	assert.Nil(t, anon.UserReaction)
}

func TestAddCommentRequiresKnownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, &fakeMedia{})
	user := seedUser(t, db, "budi", "budi@example.com", "USER")

	post, err := svc.CreatePost(context.Background(), user.ID, testFileHeader(), "", true)
	require.NoError(t, err)

	_, err = svc.AddComment(context.Background(), post.PostID, "tidak-ada", "halo")
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))

	// Identifier boleh email
	comment, err := svc.AddComment(context.Background(), post.PostID, "budi@example.com", "halo")
	require.NoError(t, err)
	assert.Equal(t, user.ID, comment.CommentUserID)
}

func TestGetCommentsPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, &fakeMedia{})
	user := seedUser(t, db, "budi", "budi@example.com", "USER")

	post, err := svc.CreatePost(context.Background(), user.ID, testFileHeader(), "", true)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := svc.AddComment(context.Background(), post.PostID, "budi", "komentar")
		require.NoError(t, err)
	}

	rows, total, err := svc.GetComments(context.Background(), post.PostID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, rows, 2)

	rows, _, err = svc.GetComments(context.Background(), post.PostID, 3, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestUpdateCaptionOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, &fakeMedia{})
	owner := seedUser(t, db, "budi", "budi@example.com", "USER")
	seedUser(t, db, "siti", "siti@example.com", "USER")

	post, err := svc.CreatePost(context.Background(), owner.ID, testFileHeader(), "awal", true)
	require.NoError(t, err)

	// User lain (bukan admin) → 403, caption tidak berubah
	newCaption := "diubah orang lain"
	_, err = svc.UpdateCaption(context.Background(), post.PostID, "siti", "USER", &newCaption)
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))

	var check model.PostModel
	require.NoError(t, db.First(&check, "post_id = ?", post.PostID).Error)
	assert.Equal(t, "awal", check.PostCaption)

	// Pemilik boleh
	ownCaption := "diubah pemilik"
	updated, err := svc.UpdateCaption(context.Background(), post.PostID, "budi", "USER", &ownCaption)
	require.NoError(t, err)
	assert.Equal(t, "diubah pemilik", updated.PostCaption)

	// Admin bypass kepemilikan
	adminCaption := "diubah admin"
	_, err = svc.UpdateCaption(context.Background(), post.PostID, "siapapun", "ADMIN", &adminCaption)
	require.NoError(t, err)
}

func TestDeletePostRemovesChildrenAndMedia(t *testing.T) {
	db := newTestDB(t)
	media := &fakeMedia{}
	svc := NewPostService(db, media)
	user := seedUser(t, db, "budi", "budi@example.com", "USER")

	post, err := svc.CreatePost(context.Background(), user.ID, testFileHeader(), "", true)
	require.NoError(t, err)
	_, err = svc.AddComment(context.Background(), post.PostID, "budi", "halo")
	require.NoError(t, err)
	_, err = svc.AddReaction(context.Background(), post.PostID, "budi", "LIKE")
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(context.Background(), post.PostID))

	assert.Equal(t, []string{"ardu_media/media1"}, media.destroyed)

	var comments, reactions, posts int64
	require.NoError(t, db.Model(&model.CommentModel{}).Count(&comments).Error)
	require.NoError(t, db.Model(&model.ReactionModel{}).Count(&reactions).Error)
	require.NoError(t, db.Model(&model.PostModel{}).Count(&posts).Error)
	assert.Zero(t, comments)
	assert.Zero(t, reactions)
	assert.Zero(t, posts)

	err = svc.DeletePost(context.Background(), post.PostID)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

func TestDeletePostSurvivesMediaFailure(t *testing.T) {
	db := newTestDB(t)
	media := &fakeMedia{failDestroy: true}
	svc := NewPostService(db, media)
	user := seedUser(t, db, "budi", "budi@example.com", "USER")

	post, err := svc.CreatePost(context.Background(), user.ID, testFileHeader(), "", true)
	require.NoError(t, err)

	// Gagal hapus di Cloudinary tidak boleh membatalkan delete
	require.NoError(t, svc.DeletePost(context.Background(), post.PostID))

	var posts int64
	require.NoError(t, db.Model(&model.PostModel{}).Count(&posts).Error)
	assert.Zero(t, posts)
}

func TestDeleteOwnedPostForbiddenForOtherUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, &fakeMedia{})
	owner := seedUser(t, db, "budi", "budi@example.com", "USER")
	seedUser(t, db, "siti", "siti@example.com", "USER")

	post, err := svc.CreatePost(context.Background(), owner.ID, testFileHeader(), "", true)
	require.NoError(t, err)

	err = svc.DeleteOwnedPost(context.Background(), post.PostID, "siti", "USER")
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))

	require.NoError(t, svc.DeleteOwnedPost(context.Background(), post.PostID, "budi", "USER"))
}
