package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/campus-events/internal/application"
	"github.com/oksasatya/campus-events/internal/infrastructure/memory"
	"github.com/oksasatya/campus-events/internal/metrics"
	"github.com/oksasatya/campus-events/pkg/helpers"
	"github.com/oksasatya/campus-events/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

func newEventEngine() *gin.Engine {
	svc := application.NewEventService(memory.NewEventRepository(), memory.NewRegistrationRepository(), nil, nil, metrics.Nop{}, helpers.NewDiscardLogger())
	h := NewEventHandler(svc, helpers.NewDiscardLogger())
	r := gin.New()
	r.POST("/events", h.Create)
	r.PUT("/events/:eventId", h.Update)
	r.POST("/events/:eventId/poster", h.UploadPoster)
	return r
}

func postJSON(r http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestCreateEventValidationMessages(t *testing.T) {
	r := newEventEngine()
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing fields", `{"name":"x"}`, "All fields are required"},
		{"bad date", `{"name":"x","date":"2026/11/02","location":"l","description":"d"}`, "Invalid date format. Use YYYY-MM-DD"},
		{"bad time", `{"name":"x","date":"2026-11-02","time":"25:00","location":"l","description":"d"}`, "Invalid time format. Use HH:MM (24-hour format)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := postJSON(r, http.MethodPost, "/events", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.want, body["message"])
		})
	}

	w, body := postJSON(r, http.MethodPost, "/events", `{"name":"x","date":"2026-11-02","time":"09:30","location":"l","description":"d"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Event created successfully", body["message"])
}

func TestUpdateMissingEvent(t *testing.T) {
	w, body := postJSON(newEventEngine(), http.MethodPut, "/events/nope", `{"name":"y"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Event not found", body["error"])
}

func TestPosterUploadDisabled(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{`form-data; name="poster"; filename="p.png"`}
	hdr["Content-Type"] = []string{"image/png"}
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, _ = part.Write([]byte("png"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/events/e1/poster", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	newEventEngine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestClubCreateRequiresContactInfo(t *testing.T) {
	h := NewClubHandler(application.NewClubService(memory.NewClubRepository()), helpers.NewDiscardLogger())
	r := gin.New()
	r.POST("/clubs", h.Create)
	r.POST("/clubs/:clubId/update", h.AddUpdate)

	w, body := postJSON(r, http.MethodPost, "/clubs", `{"name":"chess","description":"d"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields are required (name, description, contact email, and phone)", body["message"])

	w, body = postJSON(r, http.MethodPost, "/clubs/missing/update", `{"updateMessage":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Update message is required", body["message"])
}

func TestWriteServiceErrorStoreFailure(t *testing.T) {
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		writeServiceError(c, helpers.NewDiscardLogger(), &application.StoreError{Op: "list events", Err: errors.New("connection refused")})
	})
	w, body := postJSON(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", body["message"])
	assert.Equal(t, "connection refused", body["error"])
}
