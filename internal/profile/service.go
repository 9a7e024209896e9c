// internal/profile/service.go

package profile

import (
	"context"
	"fmt"
	"mime/multipart"
)

const maxPhotoSizeBytes = 5 << 20

type Service interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpsertProfile(ctx context.Context, userID int64, req *UpsertProfileRequest) (*Profile, error)
	UploadPhoto(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader) (string, error)
}

type service struct {
	repo   Repository
	upload UploadService
}

func NewService(repo Repository, upload UploadService) Service {
	return &service{
		repo:   repo,
		upload: upload,
	}
}

func (s *service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	return s.repo.GetProfileByUserID(ctx, userID)
}

func (s *service) UpsertProfile(ctx context.Context, userID int64, req *UpsertProfileRequest) (*Profile, error) {
	profile := &Profile{
		UserID:        userID,
		FirstName:     req.FirstName,
		Age:           req.Age,
		Gender:        req.Gender,
		City:          req.City,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Bio:           req.Bio,
		MaxDistanceKm: req.MaxDistanceKm,
		Sports:        req.Sports,
	}

	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *service) UploadPhoto(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > maxPhotoSizeBytes {
		return "", fmt.Errorf("photo exceeds the %dMB limit", maxPhotoSizeBytes>>20)
	}

	url, err := s.upload.UploadFile(ctx, file, header, "profiles")
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdatePhotoURL(ctx, userID, url); err != nil {
		return "", err
	}
	return url, nil
}
