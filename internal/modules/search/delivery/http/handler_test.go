package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"anoa.com/apiplayground/internal/entity"
	search "anoa.com/apiplayground/internal/modules/search/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearch struct {
	hits  []search.ProfileHit
	err   error
	query string
	limit int64
}

func (s *stubSearch) IndexProfile(*entity.Profile) error { return nil }
func (s *stubSearch) DeleteProfile(uint) error           { return nil }

func (s *stubSearch) SearchProfiles(query string, limit int64) ([]search.ProfileHit, error) {
	s.query, s.limit = query, limit
	return s.hits, s.err
}

func newRouter(svc search.MeiliSearchService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/search/profiles", NewSearchHandler(svc).SearchProfiles)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSearchProfiles(t *testing.T) {
	stub := &stubSearch{hits: []search.ProfileHit{{ID: 2, Name: "Jane Smith", Skills: []string{"SQL"}, ProjectTitles: []string{}}}}
	rec := get(newRouter(stub), "/search/profiles?q=sql")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sql", stub.query)
	assert.EqualValues(t, searchLimit, stub.limit)

	var hits []search.ProfileHit
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hits))
	require.Len(t, hits, 1)
	assert.Equal(t, "Jane Smith", hits[0].Name)
}

func TestSearchProfilesErrors(t *testing.T) {
	tests := []struct {
		name    string
		svc     search.MeiliSearchService
		path    string
		code    int
		message string
	}{
		{"missing query", &stubSearch{}, "/search/profiles", http.StatusBadRequest, `Query parameter "q" is required`},
		{"not configured", nil, "/search/profiles?q=go", http.StatusServiceUnavailable, "Profile search is not configured"},
		{"backend failure", &stubSearch{err: errors.New("dial tcp: refused")}, "/search/profiles?q=go", http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(newRouter(tt.svc), tt.path)
			assert.Equal(t, tt.code, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body["error"])
		})
	}
}
