package uploads

import (
	"context"

	"etik/pkg/etikapi"
)

type PresignedUpload = etikapi.PresignedUpload

// Repository is the storage side of the ETIK backend
type Repository interface {
	RequestPresignedURL(ctx context.Context, fileName, contentType string) (*PresignedUpload, error)
	PutObject(ctx context.Context, uploadURL, contentType string, data []byte) error
}

type ImageResponse struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
