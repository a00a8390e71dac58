package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zyfayes/polaroid/internal/camera"
	"github.com/zyfayes/polaroid/internal/develop"
	"github.com/zyfayes/polaroid/internal/domain"
	"github.com/zyfayes/polaroid/internal/store"
)

// CameraService drives the photo lifecycle: capture and normalize a
// frame, store the photo, open its develop window.
type CameraService interface {
	Capture(ctx context.Context) (domain.Photo, error)
	Photos() []domain.Photo
	Photo(id string) (domain.Photo, error)
	Delete(id string)
	Developing(id string) bool
	Close() error
}

type cameraService struct {
	source  camera.Source
	norm    *camera.Normalizer
	store   *store.Store
	tracker *develop.Tracker
	log     *zap.Logger
}

func NewCameraService(source camera.Source, norm *camera.Normalizer, st *store.Store, tracker *develop.Tracker, log *zap.Logger) CameraService {
	return &cameraService{
		source:  source,
		norm:    norm,
		store:   st,
		tracker: tracker,
		log:     log,
	}
}

// Capture reads one frame, normalizes it and adds the resulting photo
// to the store as the newest entry. A normalizer failure means no
// photo is created at all.
func (s *cameraService) Capture(ctx context.Context) (domain.Photo, error) {
	frame, err := s.source.Frame(ctx)
	if err != nil {
		s.log.Warn("Capture skipped, no frame", zap.Error(err))
		return domain.Photo{}, err
	}

	payload, err := s.norm.Normalize(frame)
	if err != nil {
		s.log.Warn("Capture skipped, normalization failed", zap.Error(err))
		return domain.Photo{}, err
	}

	photo := domain.Photo{
		ID:         uuid.New().String(),
		ImageData:  payload,
		CapturedAt: time.Now().UnixMilli(),
	}

	s.store.Add(photo)
	s.tracker.Start(photo.ID)

	s.log.Info("Photo captured",
		zap.String("id", photo.ID),
		zap.Int64("capturedAt", photo.CapturedAt),
		zap.Int("stored", s.store.Len()))

	return photo, nil
}

func (s *cameraService) Photos() []domain.Photo {
	return s.store.List()
}

func (s *cameraService) Photo(id string) (domain.Photo, error) {
	photo, ok := s.store.Get(id)
	if !ok {
		return domain.Photo{}, domain.ErrPhotoNotFound
	}
	return photo, nil
}

func (s *cameraService) Delete(id string) {
	s.store.Remove(id)
	s.log.Info("Photo deleted", zap.String("id", id))
}

func (s *cameraService) Developing(id string) bool {
	return s.tracker.Developing(id)
}

// Close releases the video source, cancels any pending develop timer
// and flushes the store. Runs on every shutdown path.
func (s *cameraService) Close() error {
	err := s.source.Close()
	s.tracker.Stop()
	if cerr := s.store.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
