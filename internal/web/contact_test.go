package web

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func Test_Contact_InvalidEmailBlocksPost(t *testing.T) {
	site := newTestSite(t)

	rec, doc := site.postForm(t, "/contact", url.Values{
		"name": {"Ada"}, "email": {"ada@example"}, "message": {"Hello"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Invalid email address", doc.Find(`.field-error[data-field="email"]`).Text())
	value, _ := doc.Find(`input[name="name"]`).Attr("value")
	assert.Equal(t, "Ada", value)
	assert.Empty(t, site.backend.posts())
}

func Test_Contact_RequiredFields(t *testing.T) {
	site := newTestSite(t)

	_, doc := site.postForm(t, "/contact", url.Values{})

	assert.Equal(t, "Name is required", doc.Find(`.field-error[data-field="name"]`).Text())
	assert.Equal(t, "Email is required", doc.Find(`.field-error[data-field="email"]`).Text())
	assert.Equal(t, "Message is required", doc.Find(`.field-error[data-field="message"]`).Text())
}

func Test_Contact_SuccessPostsOnceAndClearsForm(t *testing.T) {
	site := newTestSite(t)

	rec, doc := site.postForm(t, "/contact", url.Values{
		"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hello"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, doc.Find(".contact-success").Length())
	assert.Equal(t, 0, doc.Find("form.contact-form").Length())

	refresh, _ := doc.Find(`meta[http-equiv="refresh"]`).Attr("content")
	assert.Equal(t, "3;url=/contact", refresh)

	another, _ := doc.Find("a.send-another").Attr("href")
	_, doc = site.get(t, another)
	status, _ := doc.Find("form.contact-form").Attr("data-status")
	assert.Equal(t, "idle", status)
	value, _ := doc.Find(`input[name="name"]`).Attr("value")
	assert.Empty(t, value)

	posts := site.backend.posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "ada@example.com", posts[0].Email)
}

func Test_Contact_BackendFailureKeepsFields(t *testing.T) {
	site := newTestSite(t)
	site.backend.fail("/api/contact/", http.StatusInternalServerError)

	rec, doc := site.postForm(t, "/contact", url.Values{
		"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hello"},
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Something went wrong. Please try again.", doc.Find(".form-error").Text())
	status, _ := doc.Find("form.contact-form").Attr("data-status")
	assert.Equal(t, "error", status)
	assert.Equal(t, "Hello", doc.Find(`textarea[name="message"]`).Text())
}

func Test_Contact_MalformedBodyIsRejected(t *testing.T) {
	site := newTestSite(t)

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("name=%zz&email=ada@example.com"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec, doc := site.do(t, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Something went wrong. Please try again.", doc.Find(".form-error").Text())
	assert.Empty(t, site.backend.posts())
}

func Test_ContactAPI_JSON(t *testing.T) {
	site := newTestSite(t)

	req := httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"name":"Ada","email":"ada@example.com","message":"Hello"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://quantumstack.tech")
	rec := httptest.NewRecorder()
	site.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "https://quantumstack.tech", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Len(t, site.backend.posts(), 1)

	req = httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"name":"","email":"nope","message":"Hello"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	site.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"errors":{"name":"Name is required","email":"Invalid email address"}}`, rec.Body.String())
}

func Test_ContactAPI_RejectsForeignOrigin(t *testing.T) {
	site := newTestSite(t)

	req := httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"name":"Ada","email":"ada@example.com","message":"Hello"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	site.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, site.backend.posts())
}
