package server

import (
	"fmt"
	"net/http"
	"testing"

	"echos/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentHandlers(t *testing.T) {
	s, app := newTestServer(t)
	_, ownerToken := createUser(t, s, "owner@example.com", models.RoleMember)
	commenter, commenterToken := createUser(t, s, "commenter@example.com", models.RoleMember)
	_, adminToken := createUser(t, s, "admin@example.com", models.RoleAdmin)

	post := createPostViaAPI(t, app, ownerToken, fiber.Map{"title": "Hello", "content": "World"})
	commentsPath := fmt.Sprintf("/api/posts/%d/comments", post.ID)

	resp := doJSON(t, app, fiber.MethodPost, commentsPath, commenterToken, fiber.Map{
		"content": "first!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var comment models.Comment
	decodeBody(t, resp, &comment)
	assert.Equal(t, commenter.ID, comment.AuthorID)
	require.NotNil(t, comment.Author)

	commentPath := fmt.Sprintf("/api/comments/%d", comment.ID)

	t.Run("listing is public", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, commentsPath, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got []models.Comment
		decodeBody(t, resp, &got)
		assert.Len(t, got, 1)
	})

	t.Run("commenting on a missing post is 400", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/posts/9999/comments", commenterToken, fiber.Map{
			"content": "void",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("non-owner edit is 404", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPut, commentPath, ownerToken, fiber.Map{
			"content": "edited by someone else",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("owner edit succeeds", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPut, commentPath, commenterToken, fiber.Map{
			"content": "edited",
		})
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("admin deletes a foreign comment", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodDelete, commentPath, adminToken, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}
