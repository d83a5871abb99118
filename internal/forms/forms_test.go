package forms

import (
	"strings"
	"testing"

	"scribe/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostFormValid(t *testing.T) {
	form := &PostForm{Text: "  a perfectly fine post  "}
	require.NoError(t, form.Validate())
	assert.Equal(t, "a perfectly fine post", form.Text)

	post := form.Post()
	assert.Equal(t, "a perfectly fine post", post.Text)
	assert.Nil(t, post.GroupID)
}

func TestPostFormRequiresText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		form := &PostForm{Text: text}
		err := form.Validate()
		require.Error(t, err, "text %q should fail", text)

		fieldErrs, ok := AsFieldErrors(err)
		require.True(t, ok)
		assert.Contains(t, fieldErrs, "text")
	}
}

func TestPostFormTextLengthBoundary(t *testing.T) {
	atLimit := &PostForm{Text: strings.Repeat("a", models.MaxPostTextLen)}
	assert.NoError(t, atLimit.Validate())

	overLimit := &PostForm{Text: strings.Repeat("a", models.MaxPostTextLen+1)}
	err := overLimit.Validate()
	require.Error(t, err)

	fieldErrs, ok := AsFieldErrors(err)
	require.True(t, ok)
	require.Contains(t, fieldErrs, "text")
	assert.Contains(t, fieldErrs["text"][0], "200")
}

func TestPostFormImageURL(t *testing.T) {
	good := &PostForm{Text: "with image", ImageURL: "https://example.com/pic.png"}
	assert.NoError(t, good.Validate())

	bad := &PostForm{Text: "with image", ImageURL: "not-a-url"}
	err := bad.Validate()
	require.Error(t, err)

	fieldErrs, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fieldErrs, "image_url")
}

func TestPostFormCollectsAllErrors(t *testing.T) {
	form := &PostForm{Text: "", ImageURL: "nope"}
	err := form.Validate()
	require.Error(t, err)

	fieldErrs, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fieldErrs, "text")
	assert.Contains(t, fieldErrs, "image_url")
}

func TestCommentFormValidation(t *testing.T) {
	valid := &CommentForm{Text: " fine comment "}
	require.NoError(t, valid.Validate())
	assert.Equal(t, "fine comment", valid.Text)

	empty := &CommentForm{Text: "   "}
	err := empty.Validate()
	require.Error(t, err)

	fieldErrs, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fieldErrs, "text")

	long := &CommentForm{Text: strings.Repeat("b", models.MaxPostTextLen+1)}
	assert.Error(t, long.Validate())
}

func TestFieldErrorsAccumulate(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("text", "first problem")
	errs.Add("text", "second problem")

	assert.Len(t, errs["text"], 2)
	assert.Contains(t, errs.Error(), "text")
}
