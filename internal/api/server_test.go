package api

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shelfscanapp/shelfscan-server/internal/cosmic"
	"github.com/shelfscanapp/shelfscan-server/internal/service"
	"github.com/shelfscanapp/shelfscan-server/internal/store"
)

// fakeObject is one record in the in-memory bucket.
type fakeObject struct {
	ID        string         `json:"id"`
	Slug      string         `json:"slug"`
	Title     string         `json:"title"`
	Type      string         `json:"type"`
	CreatedAt time.Time      `json:"created_at"`
	Metadata  map[string]any `json:"metadata"`
}

// fakeBucket emulates the Cosmic objects and media APIs in memory so
// handler tests exercise the full store path.
type fakeBucket struct {
	mu      sync.Mutex
	objects []*fakeObject
	patches map[string][]map[string]any
	nextID  int
}

func newFakeBucket() *fakeBucket {
	b := &fakeBucket{patches: make(map[string][]map[string]any)}
	b.seedGenres()
	return b
}

func (b *fakeBucket) seedGenres() {
	genres := []struct{ slug, name, color string }{
		{"science-fiction", "Science Fiction", "#6366f1"},
		{"fantasy", "Fantasy", "#8b5cf6"},
		{"mystery", "Mystery", "#ef4444"},
		{"literary-fiction", "Literary Fiction", "#10b981"},
	}
	for _, g := range genres {
		b.nextID++
		b.objects = append(b.objects, &fakeObject{
			ID:    fmt.Sprintf("obj-%d", b.nextID),
			Slug:  g.slug,
			Title: g.name,
			Type:  "genre-tags",
			Metadata: map[string]any{
				"genre_name": g.name,
				"color_code": g.color,
			},
		})
	}
}

func (b *fakeBucket) add(objectType, title string, metadata map[string]any) *fakeObject {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	obj := &fakeObject{
		ID:    fmt.Sprintf("obj-%d", b.nextID),
		Slug:  strings.ReplaceAll(strings.ToLower(title), " ", "-"),
		Title: title,
		Type:  objectType,
		// Later inserts get strictly later timestamps so newest-first
		// ordering is deterministic.
		CreatedAt: time.Now().Add(time.Duration(b.nextID) * time.Second),
		Metadata:  metadata,
	}
	b.objects = append(b.objects, obj)
	return obj
}

func (b *fakeBucket) byID(id string) *fakeObject {
	for _, obj := range b.objects {
		if obj.ID == id {
			return obj
		}
	}
	return nil
}

func (b *fakeBucket) ofType(objectType string) []*fakeObject {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []*fakeObject
	for _, obj := range b.objects {
		if obj.Type == objectType {
			out = append(out, obj)
		}
	}
	return out
}

func (b *fakeBucket) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.Contains(r.URL.Path, "/media"):
			b.handleMediaUpload(w, r)
		case r.Method == http.MethodGet:
			b.handleFind(w, r)
		case r.Method == http.MethodPost:
			b.handleInsert(w, r)
		case r.Method == http.MethodPatch:
			b.handlePatch(w, r)
		default:
			http.Error(w, "unexpected request", http.StatusMethodNotAllowed)
		}
	})
}

func (b *fakeBucket) handleMediaUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	io.WriteString(w, `{"media":{"name":"stored-shelf.jpg",
		"url":"https://cdn.cosmicjs.com/stored-shelf.jpg",
		"imgix_url":"https://imgix.cosmicjs.com/stored-shelf.jpg"}}`)
}

func (b *fakeBucket) handleFind(w http.ResponseWriter, r *http.Request) {
	var query struct {
		Type string `json:"type"`
		Slug string `json:"slug"`
		Sess string `json:"metadata.session"`
	}
	if err := json.Unmarshal([]byte(r.URL.Query().Get("query")), &query); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var matched []*fakeObject
	for _, obj := range b.ofType(query.Type) {
		if query.Slug != "" && obj.Slug != query.Slug {
			continue
		}
		if query.Sess != "" && obj.Metadata["session"] != query.Sess {
			continue
		}
		matched = append(matched, obj)
	}

	body, _ := json.Marshal(map[string]any{"objects": matched})
	w.Write(body)
}

func (b *fakeBucket) handleInsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string         `json:"title"`
		Type     string         `json:"type"`
		Metadata map[string]any `json:"metadata"`
	}
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	obj := b.add(req.Type, req.Title, req.Metadata)
	body, _ := json.Marshal(map[string]any{"object": obj})
	w.Write(body)
}

func (b *fakeBucket) handlePatch(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	parts := strings.Split(r.URL.Path, "/")
	id := parts[len(parts)-1]

	var req struct {
		Metadata map[string]any `json:"metadata"`
	}
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	obj := b.byID(id)
	if obj == nil {
		http.Error(w, `{"message":"Object not found"}`, http.StatusNotFound)
		return
	}
	for k, v := range req.Metadata {
		obj.Metadata[k] = v
	}
	b.patches[id] = append(b.patches[id], req.Metadata)

	io.WriteString(w, `{"object":{"id":"`+id+`"}}`)
}

// sessionStatus returns the current stored status of one session object.
func (b *fakeBucket) sessionStatus(id string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	obj := b.byID(id)
	if obj == nil {
		return ""
	}
	status, _ := obj.Metadata["ai_analysis_status"].(string)
	return status
}

type mockVision struct {
	mu       sync.Mutex
	response string
	err      error
}

func (m *mockVision) AnalyzeBookshelf(ctx context.Context, imageURL string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockVision) Model() string { return "gpt-4o" }

type fixedCovers struct{}

func (fixedCovers) CoverURL(ctx context.Context, title, author string) string {
	return "https://covers.example/cover.jpg"
}

type testServer struct {
	server *Server
	bucket *fakeBucket
	vision *mockVision
}

// setupTestServer creates a test server wired to an in-memory bucket and a
// mock vision client.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	bucket := newFakeBucket()
	srv := httptest.NewServer(bucket.handler())
	t.Cleanup(srv.Close)

	client, err := cosmic.NewClient(cosmic.Config{
		BucketSlug: "test-bucket",
		ReadKey:    "rk",
		WriteKey:   "wk",
		APIURL:     srv.URL,
		UploadURL:  srv.URL,
	}, logger)
	require.NoError(t, err)

	st := store.New(client, logger)
	vision := &mockVision{}

	uploadService := service.NewUploadService(st, 0, logger)
	sessionService := service.NewSessionService(st, logger)
	analysisService := service.NewAnalysisService(st, vision, fixedCovers{}, logger)

	return &testServer{
		server: NewServer(uploadService, sessionService, analysisService, logger),
		bucket: bucket,
		vision: vision,
	}
}

// postJSON sends a JSON request to the server and returns the recorder.
func (ts *testServer) postJSON(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.server.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	ts.server.ServeHTTP(rec, req)
	return rec
}

// uploadFile sends a multipart upload with the given payload.
func (ts *testServer) uploadFile(t *testing.T, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload-image", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	ts.server.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), "body: %s", rec.Body.String())
}
