package services

import (
	"context"
	"errors"
	"fmt"

	"telechat/internal/storage"
	telechat_errors "telechat/pkg/errors"

	"github.com/google/uuid"
)

// UploadService hands out presigned S3 PUT URLs for avatar images. The
// client uploads directly to object storage and then persists the returned
// file URL on the user or chat row.
type UploadService struct {
	storage *storage.Client
}

func NewUploadService(storage *storage.Client) *UploadService {
	return &UploadService{storage: storage}
}

type PresignAvatarInput struct {
	UploaderID  uuid.UUID
	ContentType string
	FileSize    int64
}

type PresignAvatarResult struct {
	UploadURL string
	FileURL   string
	Key       string
	Headers   map[string]string
}

const maxAvatarBytes = 5 << 20

func (s *UploadService) PresignAvatar(ctx context.Context, in PresignAvatarInput) (PresignAvatarResult, error) {
	if s.storage == nil {
		return PresignAvatarResult{}, errors.New("s3 storage is not configured")
	}
	if in.UploaderID == uuid.Nil || in.FileSize <= 0 || in.FileSize > maxAvatarBytes {
		return PresignAvatarResult{}, telechat_errors.ErrInvalidInput
	}

	ext, err := storage.ValidateAvatarContentType(in.ContentType)
	if err != nil {
		return PresignAvatarResult{}, telechat_errors.ErrInvalidInput
	}

	key := fmt.Sprintf("avatars/%s/%s%s", in.UploaderID, uuid.New(), ext)

	uploadURL, headers, err := s.storage.PresignPut(ctx, key, in.ContentType, in.FileSize)
	if err != nil {
		return PresignAvatarResult{}, err
	}

	return PresignAvatarResult{
		UploadURL: uploadURL,
		FileURL:   s.storage.FileURL(key),
		Key:       key,
		Headers:   headers,
	}, nil
}
