package server

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"scribe/internal/models"
)

func TestCreateCommentOnAnotherAuthorsPost(t *testing.T) {
	s, app, db := newTestServer(t)

	author := createUserWithPassword(t, db, "author", "Sufficient-Pass-1")
	visitor := createUserWithPassword(t, db, "visitor", "Sufficient-Pass-1")
	post := createPostAt(t, db, author.ID, "open thread", time.Now())

	var created models.Comment
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", post.ID),
		map[string]string{"text": "drive-by comment"}, authToken(t, s, visitor.ID), &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if created.AuthorID == nil || *created.AuthorID != visitor.ID {
		t.Fatalf("expected comment author %d, got %+v", visitor.ID, created.AuthorID)
	}
}

func TestCreateCommentRequiresAuth(t *testing.T) {
	_, app, db := newTestServer(t)

	author := createUserWithPassword(t, db, "author", "Sufficient-Pass-1")
	post := createPostAt(t, db, author.ID, "quiet thread", time.Now())

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", post.ID),
		map[string]string{"text": "anonymous"}, "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestCreateCommentOnMissingPost(t *testing.T) {
	s, app, db := newTestServer(t)

	visitor := createUserWithPassword(t, db, "visitor", "Sufficient-Pass-1")

	resp := doJSON(t, app, http.MethodPost, "/api/posts/9999/comments",
		map[string]string{"text": "into the void"}, authToken(t, s, visitor.ID), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCreateCommentValidation(t *testing.T) {
	s, app, db := newTestServer(t)

	author := createUserWithPassword(t, db, "author", "Sufficient-Pass-1")
	post := createPostAt(t, db, author.ID, "thread", time.Now())

	var errResp models.ErrorResponse
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", post.ID),
		map[string]string{"text": "  "}, authToken(t, s, author.ID), &errResp)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if len(errResp.Fields["text"]) == 0 {
		t.Fatalf("expected field error for text, got %+v", errResp.Fields)
	}
}

func TestGetCommentsOldestFirst(t *testing.T) {
	_, app, db := newTestServer(t)

	author := createUserWithPassword(t, db, "author", "Sufficient-Pass-1")
	post := createPostAt(t, db, author.ID, "discussed", time.Now())

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, text := range []string{"first", "second", "third"} {
		comment := &models.Comment{
			Text:      text,
			AuthorID:  &author.ID,
			PostID:    post.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(comment).Error; err != nil {
			t.Fatalf("create comment: %v", err)
		}
	}

	var body struct {
		Comments []models.Comment `json:"comments"`
		Count    int              `json:"count"`
	}
	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d/comments", post.ID), nil, "", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body.Count != 3 {
		t.Fatalf("expected 3 comments, got %d", body.Count)
	}
	if body.Comments[0].Text != "first" || body.Comments[2].Text != "third" {
		t.Fatalf("expected oldest-first ordering, got %+v", body.Comments)
	}
}
