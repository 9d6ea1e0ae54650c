package main

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rhyrak/lecture-scheduler/internal/config"
	"github.com/rhyrak/lecture-scheduler/internal/metrics"
	"github.com/rhyrak/lecture-scheduler/internal/store"
)

const sessionsCSV = `DOSEN;Mata Kuliah;Kelas;SKS;Available Day;Available Times
Dr. Sari;Algoritma;TI21A;2;MONDAY;ALL
Dr. Budi;Etika;TI21C;1;MONDAY;ALL
`

func newTestServer(t *testing.T) (*server, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	cfg := &config.Config{
		Env:  config.EnvDevelopment,
		Port: 3001,
		Input: config.InputConfig{
			SessionsFile:    filepath.Join(dir, "sessions.csv"),
			RoomsFile:       filepath.Join(dir, "rooms.csv"),
			PreferencesFile: filepath.Join(dir, "preferences.yaml"),
			Delimiter:       ";",
		},
		Export:   config.ExportConfig{Dir: dir, PDF: true},
		Database: config.DatabaseConfig{Path: filepath.Join(dir, "runs.db")},
	}
	runs, err := store.Open(context.Background(), cfg.Database.Path)
	require.NoError(t, err)
	t.Cleanup(func() { runs.Close() })

	srv := newServer(cfg, runs, metrics.NewService(), zap.NewNop())
	return srv, srv.routes()
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for field, content := range files {
		part, err := w.CreateFormFile(field, field+".csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func do(r http.Handler, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestScheduleLifecycle(t *testing.T) {
	srv, r := newTestServer(t)

	body, ct := multipartBody(t, map[string]string{"sessions": sessionsCSV})
	w := do(r, http.MethodPost, "/schedule", body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	srv.wait()

	w = do(r, http.MethodGet, "/schedule/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Data   string `json:"data"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, store.StatusSuccess, got.Status)
	assert.True(t, strings.HasPrefix(got.Data, "Lecturer,Course,Class,Day,Time,Room,Status\n"))
	assert.Contains(t, got.Data, "Dr. Sari,Algoritma,TI21A,MONDAY,08:00-09:40,A3-1,SCHEDULED")
	assert.Contains(t, got.Data, "Dr. Budi,Etika,TI21C,ONLINE,08:00-08:50,-,ONLINE")

	w = do(r, http.MethodGet, "/schedule/"+created.ID+"/failures", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "TI21C")

	w = do(r, http.MethodGet, "/schedule/"+created.ID+"/pdf", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w = do(r, http.MethodGet, "/schedule", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.ID)

	w = do(r, http.MethodDelete, "/schedule/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodGet, "/schedule/"+created.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostScheduleRejectsBadInput(t *testing.T) {
	_, r := newTestServer(t)

	body, ct := multipartBody(t, map[string]string{"rooms": "building;floor_number;classroom_id\n"})
	w := do(r, http.MethodPost, "/schedule", body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing file: sessions")

	body, ct = multipartBody(t, map[string]string{"sessions": "DOSEN;Mata Kuliah;Kelas;SKS;Available Day;Available Times\n;X;TI21A;2;ALL;ALL\n"})
	w = do(r, http.MethodPost, "/schedule", body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")

	w = do(r, http.MethodPost, "/schedule", bytes.NewBufferString("{}"), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostScheduleWithUploadedRoomsAndPreferences(t *testing.T) {
	srv, r := newTestServer(t)

	body, ct := multipartBody(t, map[string]string{
		"sessions":    sessionsCSV,
		"rooms":       "building;floor_number;classroom_id\nLab;1;L1\n",
		"preferences": "TI: [1]\n",
	})
	w := do(r, http.MethodPost, "/schedule", body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	srv.wait()

	w = do(r, http.MethodGet, "/schedule/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "MONDAY,08:00-09:40,L1,SCHEDULED")
}

func TestHealthAndMetrics(t *testing.T) {
	_, r := newTestServer(t)

	w := do(r, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "goroutines_total")

	w = do(r, http.MethodOptions, "/schedule", nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
