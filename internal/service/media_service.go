package service

import (
	"context"
	"fmt"

	"github.com/ngoriel/portfolio-api/internal/domain"
	"github.com/ngoriel/portfolio-api/internal/repo/postgres"
)

type MediaService interface {
	ListImages(ctx context.Context, category string) ([]domain.GalleryImage, error)
	CreateImage(ctx context.Context, req *domain.CreateImageRequest) (*domain.GalleryImage, error)
	UpdateImage(ctx context.Context, id string, req *domain.UpdateImageRequest) (*domain.GalleryImage, error)
	DeleteImage(ctx context.Context, id string) error
	ReorderImages(ctx context.Context, req *domain.ReorderRequest) error

	ListVideos(ctx context.Context, category string) ([]domain.Video, error)
	CreateVideo(ctx context.Context, req *domain.CreateVideoRequest) (*domain.Video, error)
	UpdateVideo(ctx context.Context, id string, req *domain.UpdateVideoRequest) (*domain.Video, error)
	DeleteVideo(ctx context.Context, id string) error
}

type mediaService struct {
	galleryRepo postgres.GalleryRepo
	videoRepo   postgres.VideoRepo
}

func NewMediaService(galleryRepo postgres.GalleryRepo, videoRepo postgres.VideoRepo) MediaService {
	return &mediaService{
		galleryRepo: galleryRepo,
		videoRepo:   videoRepo,
	}
}

func (s *mediaService) ListImages(ctx context.Context, category string) ([]domain.GalleryImage, error) {
	images, err := s.galleryRepo.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return images, nil
}

func (s *mediaService) CreateImage(ctx context.Context, req *domain.CreateImageRequest) (*domain.GalleryImage, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	img, err := s.galleryRepo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}
	return img, nil
}

func (s *mediaService) UpdateImage(ctx context.Context, id string, req *domain.UpdateImageRequest) (*domain.GalleryImage, error) {
	img, err := s.galleryRepo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update image: %w", err)
	}
	if img == nil {
		return nil, fmt.Errorf("image not found")
	}
	return img, nil
}

func (s *mediaService) DeleteImage(ctx context.Context, id string) error {
	if err := s.galleryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

func (s *mediaService) ReorderImages(ctx context.Context, req *domain.ReorderRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if err := s.galleryRepo.Reorder(ctx, req.IDs); err != nil {
		return fmt.Errorf("failed to reorder images: %w", err)
	}
	return nil
}

func (s *mediaService) ListVideos(ctx context.Context, category string) ([]domain.Video, error) {
	videos, err := s.videoRepo.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, nil
}

func (s *mediaService) CreateVideo(ctx context.Context, req *domain.CreateVideoRequest) (*domain.Video, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	// A bare Vimeo ID is expanded into the embeddable player URL.
	if req.EmbedURL == "" && req.VimeoID != "" {
		req.EmbedURL = fmt.Sprintf("https://player.vimeo.com/video/%s", req.VimeoID)
	}
	video, err := s.videoRepo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create video: %w", err)
	}
	return video, nil
}

func (s *mediaService) UpdateVideo(ctx context.Context, id string, req *domain.UpdateVideoRequest) (*domain.Video, error) {
	video, err := s.videoRepo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update video: %w", err)
	}
	if video == nil {
		return nil, fmt.Errorf("video not found")
	}
	return video, nil
}

func (s *mediaService) DeleteVideo(ctx context.Context, id string) error {
	if err := s.videoRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	return nil
}
