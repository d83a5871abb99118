package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"scribe/internal/forms"
	"scribe/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostCreateStampsAuthor(t *testing.T) {
	db, repos := setupTestDB(t)
	svc := NewPostService(repos.posts, repos.groups)
	ctx := context.Background()

	author := createUser(t, db, "writer")

	post, err := svc.Create(ctx, author.ID, &forms.PostForm{Text: "hello world"})
	require.NoError(t, err)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.Equal(t, "hello world", post.Text)
	assert.Equal(t, author.Username, post.Author.Username)
}

func TestPostCreateValidation(t *testing.T) {
	db, repos := setupTestDB(t)
	svc := NewPostService(repos.posts, repos.groups)
	ctx := context.Background()

	author := createUser(t, db, "writer")

	_, err := svc.Create(ctx, author.ID, &forms.PostForm{Text: "   "})
	require.Error(t, err)
	fieldErrs, ok := forms.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fieldErrs, "text")

	_, err = svc.Create(ctx, author.ID, &forms.PostForm{
		Text: strings.Repeat("x", models.MaxPostTextLen+1),
	})
	require.Error(t, err)
	fieldErrs, ok = forms.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fieldErrs, "text")

	// Nothing was persisted.
	count, err := repos.posts.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPostCreateRejectsUnknownGroup(t *testing.T) {
	db, repos := setupTestDB(t)
	svc := NewPostService(repos.posts, repos.groups)
	ctx := context.Background()

	author := createUser(t, db, "writer")
	missing := uint(4242)

	_, err := svc.Create(ctx, author.ID, &forms.PostForm{Text: "hi", GroupID: &missing})
	require.Error(t, err)
	fieldErrs, ok := forms.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fieldErrs, "group_id")
}

func TestPostUpdateOnlyByAuthor(t *testing.T) {
	db, repos := setupTestDB(t)
	svc := NewPostService(repos.posts, repos.groups)
	ctx := context.Background()

	author := createUser(t, db, "owner")
	intruder := createUser(t, db, "intruder")
	post := createPost(t, db, author.ID, "original", time.Now())

	_, err := svc.Update(ctx, intruder.ID, post.ID, &forms.PostForm{Text: "hijacked"})
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	// Untouched after the rejected edit.
	got, err := svc.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Text)

	updated, err := svc.Update(ctx, author.ID, post.ID, &forms.PostForm{Text: "revised"})
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Text)
}

func TestPostUpdateCanMoveBetweenGroups(t *testing.T) {
	db, repos := setupTestDB(t)
	svc := NewPostService(repos.posts, repos.groups)
	ctx := context.Background()

	author := createUser(t, db, "mover")
	group := createGroup(t, db, "destination")
	post := createPost(t, db, author.ID, "wandering", time.Now())

	updated, err := svc.Update(ctx, author.ID, post.ID, &forms.PostForm{
		Text:    "wandering",
		GroupID: &group.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.GroupID)
	assert.Equal(t, group.ID, *updated.GroupID)

	// Clearing the group works the same way.
	cleared, err := svc.Update(ctx, author.ID, post.ID, &forms.PostForm{Text: "wandering"})
	require.NoError(t, err)
	assert.Nil(t, cleared.GroupID)
}

func TestPostDeleteOnlyByAuthor(t *testing.T) {
	db, repos := setupTestDB(t)
	svc := NewPostService(repos.posts, repos.groups)
	ctx := context.Background()

	author := createUser(t, db, "owner")
	intruder := createUser(t, db, "intruder")
	post := createPost(t, db, author.ID, "target", time.Now())

	err := svc.Delete(ctx, intruder.ID, post.ID)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	require.NoError(t, svc.Delete(ctx, author.ID, post.ID))

	_, err = svc.Get(ctx, post.ID)
	assert.True(t, models.IsNotFound(err))
}
