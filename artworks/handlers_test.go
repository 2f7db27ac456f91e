package artworks

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/galleria-go/apperror"
	"github.com/user/galleria-go/auth"
)

// stubService implements Service with pluggable behavior per test.
type stubService struct {
	createFn func(ctx context.Context, userID int, input ArtworkInput) (*Artwork, error)
	listFn   func(ctx context.Context, userID int) ([]Artwork, error)
	getFn    func(ctx context.Context, userID, artworkID int) (*Artwork, error)
	updateFn func(ctx context.Context, userID, artworkID int, input ArtworkInput) (*Artwork, error)
	deleteFn func(ctx context.Context, userID, artworkID int) error

	calls int
}

func (s *stubService) Create(ctx context.Context, userID int, input ArtworkInput) (*Artwork, error) {
	s.calls++
	return s.createFn(ctx, userID, input)
}

func (s *stubService) List(ctx context.Context, userID int) ([]Artwork, error) {
	s.calls++
	return s.listFn(ctx, userID)
}

func (s *stubService) GetByID(ctx context.Context, userID, artworkID int) (*Artwork, error) {
	s.calls++
	return s.getFn(ctx, userID, artworkID)
}

func (s *stubService) Update(ctx context.Context, userID, artworkID int, input ArtworkInput) (*Artwork, error) {
	s.calls++
	return s.updateFn(ctx, userID, artworkID, input)
}

func (s *stubService) Delete(ctx context.Context, userID, artworkID int) error {
	s.calls++
	return s.deleteFn(ctx, userID, artworkID)
}

// newTestRouter mounts the handler the way main does, optionally
// injecting an authenticated identity the way the JWT middleware
// would.
func newTestRouter(svc Service, authedUserID *int) http.Handler {
	r := chi.NewRouter()
	if authedUserID != nil {
		uid := *authedUserID
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				ctx := context.WithValue(req.Context(), auth.UserIDKey, uid)
				next.ServeHTTP(w, req.WithContext(ctx))
			})
		})
	}
	NewHandler(svc).RegisterRoutes(r)
	return r
}

func intPtr(v int) *int { return &v }

func TestHandleCreate(t *testing.T) {
	t.Parallel()

	svc := &stubService{
		createFn: func(ctx context.Context, userID int, input ArtworkInput) (*Artwork, error) {
			require.Equal(t, 7, userID)
			return &Artwork{
				ID:          1,
				UserID:      userID,
				Image:       input.Image,
				Title:       input.Title,
				Artist:      input.Artist,
				Year:        input.Year,
				Category:    input.Category,
				Description: input.Description,
			}, nil
		},
	}
	router := newTestRouter(svc, intPtr(7))

	body := `{"image":"https://img.example/sunset.jpg","title":"Sunset","artist":"Alice","category":"painting"}`
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created Artwork
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, 7, created.UserID)
	assert.Equal(t, "Sunset", created.Title)
	assert.Nil(t, created.Year, "omitted year stays null")
	assert.Nil(t, created.Description, "omitted description stays null")
}

func TestHandleList_EmptyGallery(t *testing.T) {
	t.Parallel()

	svc := &stubService{
		listFn: func(ctx context.Context, userID int) ([]Artwork, error) {
			return []Artwork{}, nil
		},
	}
	router := newTestRouter(svc, intPtr(7))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// An empty gallery is an empty array, never null.
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandleGet_NotOwned(t *testing.T) {
	t.Parallel()

	svc := &stubService{
		getFn: func(ctx context.Context, userID, artworkID int) (*Artwork, error) {
			// Someone else's record and a missing record are
			// indistinguishable to the caller.
			return nil, apperror.NewNotFoundError("artwork not found", nil)
		},
	}
	router := newTestRouter(svc, intPtr(7))

	req := httptest.NewRequest(http.MethodGet, "/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"artwork not found"}`, rec.Body.String())
}

func TestHandleGet_BadID(t *testing.T) {
	t.Parallel()

	svc := &stubService{}
	router := newTestRouter(svc, intPtr(7))

	req := httptest.NewRequest(http.MethodGet, "/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, svc.calls, "service must not be reached with an unparseable ID")
}

func TestHandleUpdate_FullReplace(t *testing.T) {
	t.Parallel()

	svc := &stubService{
		updateFn: func(ctx context.Context, userID, artworkID int, input ArtworkInput) (*Artwork, error) {
			require.Equal(t, 7, userID)
			require.Equal(t, 3, artworkID)
			return &Artwork{
				ID:          artworkID,
				UserID:      userID,
				Image:       input.Image,
				Title:       input.Title,
				Artist:      input.Artist,
				Year:        input.Year,
				Category:    input.Category,
				Description: input.Description,
			}, nil
		},
	}
	router := newTestRouter(svc, intPtr(7))

	body := `{"image":"https://img.example/v2.jpg","title":"Sunrise","artist":"Alice","year":2024,"category":"painting","description":"repainted"}`
	req := httptest.NewRequest(http.MethodPut, "/3", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp UpdateArtworkResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "artwork updated", resp.Message)
	assert.Equal(t, 3, resp.Artwork.ID)
	assert.Equal(t, 7, resp.Artwork.UserID)
	assert.Equal(t, "Sunrise", resp.Artwork.Title)
	require.NotNil(t, resp.Artwork.Year)
	assert.Equal(t, 2024, *resp.Artwork.Year)
	require.NotNil(t, resp.Artwork.Description)
	assert.Equal(t, "repainted", *resp.Artwork.Description)
}

func TestHandleUpdate_NoMatch(t *testing.T) {
	t.Parallel()

	svc := &stubService{
		updateFn: func(ctx context.Context, userID, artworkID int, input ArtworkInput) (*Artwork, error) {
			return nil, apperror.NewNotFoundError("artwork not found or unauthorized", nil)
		},
	}
	router := newTestRouter(svc, intPtr(7))

	req := httptest.NewRequest(http.MethodPut, "/99", bytes.NewBufferString(`{"title":"x"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"artwork not found or unauthorized"}`, rec.Body.String())
}

func TestHandleDelete_SucceedsWithoutMatch(t *testing.T) {
	t.Parallel()

	svc := &stubService{
		deleteFn: func(ctx context.Context, userID, artworkID int) error {
			// The storage layer reports success regardless of
			// whether a row matched.
			return nil
		},
	}
	router := newTestRouter(svc, intPtr(7))

	req := httptest.NewRequest(http.MethodDelete, "/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"artwork deleted"}`, rec.Body.String())
}

func TestHandlers_NoIdentity(t *testing.T) {
	t.Parallel()

	svc := &stubService{}
	router := newTestRouter(svc, nil)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/"},
		{http.MethodGet, "/"},
		{http.MethodGet, "/1"},
		{http.MethodPut, "/1"},
		{http.MethodDelete, "/1"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equalf(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
	assert.Zero(t, svc.calls, "service must not be reached without an identity")
}
