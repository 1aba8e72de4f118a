package media

import (
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/panchito04/BackHogEle/config"
)

// Uploader forwards binary images to an external media-hosting service
// and returns the resulting secure URL.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, filename string) (string, error)
}

// CloudinaryUploader implements Uploader against Cloudinary
type CloudinaryUploader struct {
	client *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryUploader creates an uploader from a cloudinary:// URL.
// An empty URL yields a disabled uploader; upload attempts then fail
// with a configuration error instead of a nil dereference.
func NewCloudinaryUploader(cfg config.CloudinaryConfig) (*CloudinaryUploader, error) {
	if cfg.URL == "" {
		log.Warn().Msg("Cloudinary not configured, image upload disabled")
		return &CloudinaryUploader{folder: cfg.Folder}, nil
	}

	client, err := cloudinary.NewFromURL(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Cloudinary client")
	}

	return &CloudinaryUploader{
		client: client,
		folder: cfg.Folder,
	}, nil
}

// Upload sends the image to Cloudinary and returns its secure URL
func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, filename string) (string, error) {
	if u.client == nil {
		return "", errors.New("media service is not configured")
	}

	resp, err := u.client.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         u.folder,
		PublicID:       uuid.NewString(),
		Format:         "jpg",
		Transformation: "c_limit,w_800,h_800/q_auto:eco",
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to upload image")
	}

	log.Info().Str("file", filename).Str("url", resp.SecureURL).Msg("Image uploaded")
	return resp.SecureURL, nil
}
