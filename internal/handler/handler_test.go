package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zyfayes/polaroid/internal/camera"
	"github.com/zyfayes/polaroid/internal/composer"
	"github.com/zyfayes/polaroid/internal/develop"
	"github.com/zyfayes/polaroid/internal/export"
	"github.com/zyfayes/polaroid/internal/service"
	"github.com/zyfayes/polaroid/internal/store"
)

type nullClipboard struct{}

func (nullClipboard) Write(mimeType string, data []byte) error { return nil }

type nullFileSink struct{}

func (nullFileSink) Deliver(filename string, data []byte) error { return nil }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New(store.NewMemoryMedium(), 50, zap.NewNop())
	source, err := camera.NewSyntheticSource(320, 240)
	if err != nil {
		t.Fatal(err)
	}
	svc := service.NewCameraService(source, camera.NewNormalizer(600, 70), st,
		develop.NewTracker(time.Second), zap.NewNop())
	t.Cleanup(func() { svc.Close() })

	c, err := composer.New()
	if err != nil {
		t.Fatal(err)
	}
	actions := export.NewActions(c, nullClipboard{}, nullFileSink{}, zap.NewNop())

	h := NewHandler(svc, actions, zap.NewNop())

	router := gin.New()
	router.GET("/health", h.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/capture", h.Capture)
		api.GET("/photos", h.ListPhotos)
		api.GET("/photos/:id", h.GetPhoto)
		api.DELETE("/photos/:id", h.DeletePhoto)
		api.POST("/photos/:id/copy", h.CopyFrame)
		api.GET("/photos/:id/frame", h.DownloadFrame)
	}
	return router
}

func do(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestCaptureListDeleteFlow(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodPost, "/api/capture")
	if w.Code != http.StatusCreated {
		t.Fatalf("capture: expected 201, got %d: %s", w.Code, w.Body)
	}

	var captured struct {
		Photo struct {
			ID         string `json:"id"`
			Developing bool   `json:"developing"`
		} `json:"photo"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &captured); err != nil {
		t.Fatal(err)
	}
	if captured.Photo.ID == "" {
		t.Fatal("capture response missing id")
	}
	if !captured.Photo.Developing {
		t.Error("fresh capture should be developing")
	}

	w = do(router, http.MethodGet, "/api/photos")
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	var listed struct {
		Photos []struct {
			ID string `json:"id"`
		} `json:"photos"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatal(err)
	}
	if len(listed.Photos) != 1 || listed.Photos[0].ID != captured.Photo.ID {
		t.Fatalf("unexpected listing: %s", w.Body)
	}

	w = do(router, http.MethodDelete, "/api/photos/"+captured.Photo.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}

	w = do(router, http.MethodGet, "/api/photos/"+captured.Photo.ID)
	if w.Code != http.StatusNotFound {
		t.Errorf("deleted photo should 404, got %d", w.Code)
	}
}

func TestDownloadFrame(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodPost, "/api/capture")
	var captured struct {
		Photo struct {
			ID string `json:"id"`
		} `json:"photo"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &captured); err != nil {
		t.Fatal(err)
	}

	w = do(router, http.MethodGet, "/api/photos/"+captured.Photo.ID+"/frame")
	if w.Code != http.StatusOK {
		t.Fatalf("frame: expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("expected image/png, got %s", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, export.Filename(captured.Photo.ID)) {
		t.Errorf("attachment filename missing from %q", cd)
	}
	if !strings.HasPrefix(w.Body.String(), "\x89PNG") {
		t.Error("body is not PNG data")
	}
}

func TestCopyFrameUnknownPhoto(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodPost, "/api/photos/nope/copy")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
