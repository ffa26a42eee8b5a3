package form

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postContext(values url.Values) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req
	return c
}

func TestBindFindMovie(t *testing.T) {
	var f FindMovie
	errs := Bind(postContext(url.Values{"title": {"Fight Club"}}), &f)
	assert.Empty(t, errs)
	assert.Equal(t, "Fight Club", f.Title)
}

func TestBindFindMovieRequired(t *testing.T) {
	for _, title := range []string{"", "   "} {
		var f FindMovie
		errs := Bind(postContext(url.Values{"title": {title}}), &f)
		require.Len(t, errs, 1, "title %q", title)
		assert.Equal(t, "This field is required.", errs["title"])
	}
}

func TestBindEdit(t *testing.T) {
	var f Edit
	errs := Bind(postContext(url.Values{"rating": {"7.5"}, "review": {"Great film"}}), &f)
	require.Empty(t, errs)

	rating, err := f.ParseRating()
	require.NoError(t, err)
	assert.Equal(t, 7.5, rating)
	assert.Equal(t, "Great film", f.Review)
}

func TestBindEditReviewTooLong(t *testing.T) {
	var f Edit
	errs := Bind(postContext(url.Values{"rating": {"7"}, "review": {strings.Repeat("a", 101)}}), &f)
	assert.Equal(t, "Field cannot be longer than 100 characters.", errs["review"])
	assert.NotContains(t, errs, "rating")
}

func TestParseRatingRejectsBadValues(t *testing.T) {
	for _, raw := range []string{"great", "NaN", "Inf", "-1", "10.5", ""} {
		f := Edit{Rating: raw}
		_, err := f.ParseRating()
		var fe *FieldError
		require.ErrorAs(t, err, &fe, "rating %q", raw)
		assert.Equal(t, "rating", fe.Field)
	}

	f := Edit{Rating: " 10 "}
	v, err := f.ParseRating()
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)
}

func TestErrorsAddKeepsFirst(t *testing.T) {
	var errs Errors
	errs = errs.Add("rating", "first")
	errs = errs.Add("rating", "second")
	assert.Equal(t, Errors{"rating": "first"}, errs)
}
