package repository

import (
	"context"
	"testing"

	"echos/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Email: "Alice@Example.COM", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, models.RoleMember, user.Role)

	t.Run("email uniqueness is case-insensitive", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{Email: "ALICE@example.com", Password: "hashed"})
		assert.True(t, models.HasCode(err, models.CodeValidation))
	})

	t.Run("empty email rejected", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{Email: "   ", Password: "hashed"})
		assert.True(t, models.HasCode(err, models.CodeValidation))
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "alice@example.com", models.RoleLeader)

	got, err := repo.GetByEmail(ctx, "  Alice@Example.com ")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.RoleLeader, got.Role)

	t.Run("absent user is nil, not an error", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestUserRepository_UpdateRole(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	member := createTestUser(t, db, "member@example.com", models.RoleMember)
	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)

	ok, err := repo.UpdateRole(ctx, member.ID, models.RoleLeader)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleLeader, got.Role)

	t.Run("admin accounts are protected", func(t *testing.T) {
		ok, err := repo.UpdateRole(ctx, admin.ID, models.RoleMember)
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := repo.GetByID(ctx, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, got.Role)
	})

	t.Run("absent user reports false", func(t *testing.T) {
		ok, err := repo.UpdateRole(ctx, 9999, models.RoleLeader)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		_, err := repo.UpdateRole(ctx, member.ID, models.Role("owner"))
		assert.True(t, models.HasCode(err, models.CodeValidation))
	})
}

func TestUserRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", models.RoleMember)
	other := createTestUser(t, db, "other@example.com", models.RoleMember)

	ownPost := createTestPost(t, db, author.ID)
	otherPost := createTestPost(t, db, other.ID)

	// The author interacts with the other user's post before leaving.
	_, err := posts.ToggleLike(ctx, otherPost.ID, author.ID)
	require.NoError(t, err)
	require.NoError(t, NewCommentRepository(db).Create(ctx, &models.Comment{
		PostID: otherPost.ID, AuthorID: author.ID, Content: "farewell",
	}))

	ok, err := users.Delete(ctx, author.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	t.Run("own posts are gone with their dependents", func(t *testing.T) {
		got, err := posts.GetByID(ctx, ownPost.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("likes and comments elsewhere survive without an author", func(t *testing.T) {
		got, err := posts.GetByID(ctx, otherPost.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 1, got.LikesCount)
		require.Len(t, got.Comments, 1)
		assert.Nil(t, got.Comments[0].Author)
	})

	t.Run("deleted user no longer resolves", func(t *testing.T) {
		got, err := users.GetByID(ctx, author.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("admin accounts are protected", func(t *testing.T) {
		admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
		ok, err := users.Delete(ctx, admin.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("absent user reports false", func(t *testing.T) {
		ok, err := users.Delete(ctx, 9999)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestUserRepository_List(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "zoe@example.com", models.RoleMember)
	createTestUser(t, db, "amy@example.com", models.RoleMember)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "amy@example.com", users[0].Email)
}
