package api

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfscanapp/shelfscan-server/internal/domain"
	"github.com/shelfscanapp/shelfscan-server/internal/http/response"
)

// pngBytes renders a small PNG for upload tests.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 150, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

const shelfAnalysis = `{
	"detected_books": [
		{"title": "Dune", "author": "Frank Herbert", "isbn": "9780441172719", "confidence_score": 95},
		{"title": "The Hobbit", "author": "J.R.R. Tolkien", "confidence_score": 90}
	],
	"insights": [
		{"type": "genre_breakdown", "title": "Genre Mix", "description": "Mostly speculative fiction."},
		{"type": "author_diversity", "title": "Author Spread", "description": "A couple of 20th-century authors."}
	],
	"recommendations": [
		{"title": "Hyperion", "author": "Dan Simmons", "reason": "Epic sci-fi like Dune.", "match_score": 92},
		{"title": "Foundation", "author": "Isaac Asimov", "reason": "Galaxy-spanning saga.", "match_score": 90},
		{"title": "The Name of the Wind", "author": "Patrick Rothfuss", "reason": "Fantasy epic.", "match_score": 85}
	]
}`

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.get(t, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)

	var health HealthResponse
	decodeJSON(t, rec, &health)
	assert.Equal(t, "healthy", health.Status)
}

func TestUploadImage_Success(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.uploadFile(t, "shelf.png", "image/png", pngBytes(t))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Success bool           `json:"success"`
		Data    UploadResponse `json:"data"`
	}
	decodeJSON(t, rec, &envelope)

	assert.True(t, envelope.Success)
	assert.Equal(t, "stored-shelf.jpg", envelope.Data.Media.Name)
	assert.Equal(t, "https://imgix.cosmicjs.com/stored-shelf.jpg", envelope.Data.Media.ImgixURL)
	assert.NotEmpty(t, envelope.Data.BlurHash)
}

func TestUploadImage_RejectsNonImage(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.uploadFile(t, "notes.pdf", "application/pdf", []byte("pdf-data"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope response.Envelope
	decodeJSON(t, rec, &envelope)
	assert.False(t, envelope.Success)
	assert.Equal(t, "Please select an image file", envelope.Error)
}

func TestUploadImage_RejectsOversizedFile(t *testing.T) {
	ts := setupTestServer(t)

	// 15MB of zeroes, over the 10MB cap.
	rec := ts.uploadFile(t, "huge.jpg", "image/jpeg", make([]byte, 15*1024*1024))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope response.Envelope
	decodeJSON(t, rec, &envelope)
	assert.False(t, envelope.Success)
	assert.Equal(t, "File size must be less than 10MB", envelope.Error)

	// Nothing was persisted.
	assert.Empty(t, ts.bucket.ofType("book-analysis-sessions"))
}

func TestUploadImage_MissingFile(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.postJSON(t, "/api/upload-image", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateSession_Success(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.postJSON(t, "/api/create-session", map[string]string{
		"mediaName": "stored-shelf.jpg",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body SessionResponse
	decodeJSON(t, rec, &body)
	require.NotNil(t, body.Session)

	assert.True(t, strings.HasPrefix(body.Session.Title, "Bookshelf Scan - "))
	assert.Equal(t, domain.StatusPending, body.Session.Status)
	assert.True(t, strings.HasPrefix(body.Session.UserID, "user-"))
	assert.NotEmpty(t, body.Session.Slug)
}

func TestCreateSession_RequiresMediaName(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.postJSON(t, "/api/create-session", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ts.bucket.ofType("book-analysis-sessions"))
}

func TestAnalyzeBookshelf_HappyPath(t *testing.T) {
	ts := setupTestServer(t)
	ts.vision.response = shelfAnalysis

	// Upload, create a session, then analyze.
	rec := ts.uploadFile(t, "shelf.png", "image/png", pngBytes(t))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.postJSON(t, "/api/create-session", map[string]string{"mediaName": "stored-shelf.jpg"})
	require.Equal(t, http.StatusOK, rec.Code)
	var created SessionResponse
	decodeJSON(t, rec, &created)

	rec = ts.postJSON(t, "/api/analyze-bookshelf", map[string]string{
		"sessionId": created.Session.ID,
		"imageUrl":  "https://imgix.cosmicjs.com/stored-shelf.jpg",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result AnalyzeResponse
	decodeJSON(t, rec, &result)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.BooksDetected)
	assert.Equal(t, 2, result.InsightsCreated)
	assert.Equal(t, 3, result.RecommendationsCreated)

	assert.Equal(t, "Completed", ts.bucket.sessionStatus(created.Session.ID))
	assert.Len(t, ts.bucket.ofType("detected-books"), 2)
	assert.Len(t, ts.bucket.ofType("collection-insights"), 2)
	assert.Len(t, ts.bucket.ofType("book-recommendations"), 3)
}

func TestAnalyzeBookshelf_NonJSONResponse(t *testing.T) {
	ts := setupTestServer(t)
	ts.vision.response = "Sure! I can see several books on this shelf."

	rec := ts.postJSON(t, "/api/create-session", map[string]string{"mediaName": "stored-shelf.jpg"})
	require.Equal(t, http.StatusOK, rec.Code)
	var created SessionResponse
	decodeJSON(t, rec, &created)

	rec = ts.postJSON(t, "/api/analyze-bookshelf", map[string]string{
		"sessionId": created.Session.ID,
		"imageUrl":  "https://imgix.cosmicjs.com/stored-shelf.jpg",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// Session marked Failed, no child records created.
	assert.Equal(t, "Failed", ts.bucket.sessionStatus(created.Session.ID))
	assert.Empty(t, ts.bucket.ofType("detected-books"))
	assert.Empty(t, ts.bucket.ofType("collection-insights"))
	assert.Empty(t, ts.bucket.ofType("book-recommendations"))
}

func TestAnalyzeBookshelf_VisionError(t *testing.T) {
	ts := setupTestServer(t)
	ts.vision.err = errors.New("model overloaded")

	rec := ts.postJSON(t, "/api/create-session", map[string]string{"mediaName": "stored-shelf.jpg"})
	require.Equal(t, http.StatusOK, rec.Code)
	var created SessionResponse
	decodeJSON(t, rec, &created)

	rec = ts.postJSON(t, "/api/analyze-bookshelf", map[string]string{
		"sessionId": created.Session.ID,
		"imageUrl":  "https://imgix.cosmicjs.com/stored-shelf.jpg",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed", ts.bucket.sessionStatus(created.Session.ID))
}

func TestAnalyzeBookshelf_MissingFields(t *testing.T) {
	ts := setupTestServer(t)
	ts.vision.response = shelfAnalysis

	rec := ts.postJSON(t, "/api/analyze-bookshelf", map[string]string{
		"imageUrl": "https://imgix.cosmicjs.com/stored-shelf.jpg",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.postJSON(t, "/api/analyze-bookshelf", map[string]string{
		"sessionId": "obj-99",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// No state was touched.
	assert.Empty(t, ts.bucket.ofType("detected-books"))
}

func TestListSessions_NewestFirst(t *testing.T) {
	ts := setupTestServer(t)

	for _, title := range []string{"First Scan", "Second Scan"} {
		ts.bucket.add("book-analysis-sessions", title, map[string]any{
			"user_id":            "user-x",
			"ai_analysis_status": "Completed",
		})
	}

	rec := ts.get(t, "/api/sessions")
	require.Equal(t, http.StatusOK, rec.Code)

	var body SessionListResponse
	decodeJSON(t, rec, &body)
	require.Equal(t, 2, body.Total)
	assert.Equal(t, "Second Scan", body.Sessions[0].Title)
	assert.Equal(t, "First Scan", body.Sessions[1].Title)
}

func TestLandingPage(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.get(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Analyze Bookshelf")
	// The upload script surfaces the server's error string, not a generic one.
	assert.Contains(t, rec.Body.String(), "upload.error ||")
	// No sessions yet, so no latest-scan card.
	assert.NotContains(t, rec.Body.String(), "Latest Scan")
}

func TestLandingPage_ShowsLatestSession(t *testing.T) {
	ts := setupTestServer(t)
	ts.bucket.add("book-analysis-sessions", "Bookshelf Scan - August 31, 2026", map[string]any{
		"user_id":              "user-x",
		"ai_analysis_status":   "Completed",
		"total_books_detected": float64(7),
	})

	rec := ts.get(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Latest Scan")
	assert.Contains(t, rec.Body.String(), "Bookshelf Scan - August 31, 2026")
	assert.Contains(t, rec.Body.String(), "Analysis Complete")
}

func TestResultsPage(t *testing.T) {
	ts := setupTestServer(t)
	ts.vision.response = shelfAnalysis

	rec := ts.postJSON(t, "/api/create-session", map[string]string{"mediaName": "stored-shelf.jpg"})
	require.Equal(t, http.StatusOK, rec.Code)
	var created SessionResponse
	decodeJSON(t, rec, &created)

	rec = ts.postJSON(t, "/api/analyze-bookshelf", map[string]string{
		"sessionId": created.Session.ID,
		"imageUrl":  "https://imgix.cosmicjs.com/stored-shelf.jpg",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.get(t, "/sessions/"+created.Session.Slug)
	require.Equal(t, http.StatusOK, rec.Code)

	page := rec.Body.String()
	assert.Contains(t, page, "Dune")
	assert.Contains(t, page, "Frank Herbert")
	assert.Contains(t, page, "Genre Mix")
	assert.Contains(t, page, "Hyperion")
	assert.Contains(t, page, "92% match")
}

func TestResultsPage_UnknownSlug(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.get(t, "/sessions/no-such-scan")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Scan not found")
}

func TestRateLimit_ExpensiveEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	// Exhaust the per-IP burst; httptest requests share one RemoteAddr.
	var last int
	for i := 0; i < expensiveBurst+1; i++ {
		rec := ts.uploadFile(t, "shelf.png", "image/png", pngBytes(t))
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)

	// Cheap endpoints are not limited.
	rec := ts.get(t, "/api/sessions")
	assert.Equal(t, http.StatusOK, rec.Code)
}
