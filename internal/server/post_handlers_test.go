package server

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"scribe/internal/models"
	"scribe/internal/service"
)

func TestCreateAndGetPost(t *testing.T) {
	s, app, db := newTestServer(t)

	author := createUserWithPassword(t, db, "writer", "Sufficient-Pass-1")
	token := authToken(t, s, author.ID)

	var created models.Post
	resp := doJSON(t, app, http.MethodPost, "/api/posts/", map[string]string{
		"text": "my first post",
	}, token, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	if created.AuthorID != author.ID {
		t.Fatalf("create: expected author %d, got %d", author.ID, created.AuthorID)
	}
	if created.Author.Username != "writer" {
		t.Fatalf("create: expected preloaded author, got %+v", created.Author)
	}

	var detail struct {
		Post     models.Post      `json:"post"`
		Comments []models.Comment `json:"comments"`
	}
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", created.ID), nil, "", &detail)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", resp.StatusCode)
	}
	if detail.Post.Text != "my first post" {
		t.Fatalf("get: unexpected text %q", detail.Post.Text)
	}
	if len(detail.Comments) != 0 {
		t.Fatalf("get: expected no comments, got %d", len(detail.Comments))
	}
}

func TestCreatePostValidation(t *testing.T) {
	s, app, db := newTestServer(t)

	author := createUserWithPassword(t, db, "writer", "Sufficient-Pass-1")
	token := authToken(t, s, author.ID)

	var errResp models.ErrorResponse
	resp := doJSON(t, app, http.MethodPost, "/api/posts/", map[string]string{
		"text": "   ",
	}, token, &errResp)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if len(errResp.Fields["text"]) == 0 {
		t.Fatalf("expected a field error for text, got %+v", errResp.Fields)
	}
}

func TestCreatePostUnknownGroup(t *testing.T) {
	s, app, db := newTestServer(t)

	author := createUserWithPassword(t, db, "writer", "Sufficient-Pass-1")
	token := authToken(t, s, author.ID)

	var errResp models.ErrorResponse
	resp := doJSON(t, app, http.MethodPost, "/api/posts/", map[string]any{
		"text":     "into the void",
		"group_id": 4242,
	}, token, &errResp)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if len(errResp.Fields["group_id"]) == 0 {
		t.Fatalf("expected a field error for group_id, got %+v", errResp.Fields)
	}
}

func TestUpdatePostForbiddenForNonAuthor(t *testing.T) {
	s, app, db := newTestServer(t)

	author := createUserWithPassword(t, db, "owner", "Sufficient-Pass-1")
	intruder := createUserWithPassword(t, db, "intruder", "Sufficient-Pass-1")
	post := createPostAt(t, db, author.ID, "original", time.Now())

	resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/posts/%d", post.ID),
		map[string]string{"text": "hijacked"}, authToken(t, s, intruder.ID), nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}

	var updated models.Post
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/posts/%d", post.ID),
		map[string]string{"text": "revised"}, authToken(t, s, author.ID), &updated)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for author edit, got %d", resp.StatusCode)
	}
	if updated.Text != "revised" {
		t.Fatalf("expected revised text, got %q", updated.Text)
	}
}

func TestDeletePostCascadesComments(t *testing.T) {
	s, app, db := newTestServer(t)

	author := createUserWithPassword(t, db, "owner", "Sufficient-Pass-1")
	post := createPostAt(t, db, author.ID, "doomed", time.Now())
	comment := &models.Comment{Text: "soon gone", AuthorID: &author.ID, PostID: post.ID}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}

	resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID),
		nil, authToken(t, s, author.ID), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), nil, "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}

	var commentCount int64
	if err := db.Model(&models.Comment{}).Count(&commentCount).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if commentCount != 0 {
		t.Fatalf("expected comments to be deleted with the post, found %d", commentCount)
	}
}

func TestGetPostInvalidID(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodGet, "/api/posts/not-a-number", nil, "", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGlobalFeedPagination(t *testing.T) {
	_, app, db := newTestServer(t)

	author := createUserWithPassword(t, db, "prolific", "Sufficient-Pass-1")
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 13; i++ {
		createPostAt(t, db, author.ID, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	var first service.Feed
	resp := doJSON(t, app, http.MethodGet, "/api/posts/", nil, "", &first)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(first.Posts) != 10 || first.PageCount != 2 || !first.HasNext {
		t.Fatalf("unexpected first page: %d posts, %d pages, has_next=%v",
			len(first.Posts), first.PageCount, first.HasNext)
	}
	if first.Posts[0].Text != "post 12" {
		t.Fatalf("expected newest first, got %q", first.Posts[0].Text)
	}

	var second service.Feed
	doJSON(t, app, http.MethodGet, "/api/posts/?page=2", nil, "", &second)
	if len(second.Posts) != 3 || second.HasNext || !second.HasPrevious {
		t.Fatalf("unexpected second page: %d posts", len(second.Posts))
	}

	// Out-of-range pages clamp instead of erroring.
	var clamped service.Feed
	resp = doJSON(t, app, http.MethodGet, "/api/posts/?page=99", nil, "", &clamped)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for out-of-range page, got %d", resp.StatusCode)
	}
	if clamped.Page != 2 || len(clamped.Posts) != 3 {
		t.Fatalf("expected clamp to last page, got page %d with %d posts", clamped.Page, len(clamped.Posts))
	}

	var garbage service.Feed
	doJSON(t, app, http.MethodGet, "/api/posts/?page=banana", nil, "", &garbage)
	if garbage.Page != 1 {
		t.Fatalf("expected malformed page to fall back to 1, got %d", garbage.Page)
	}
}
