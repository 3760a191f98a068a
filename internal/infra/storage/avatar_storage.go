// Package storage keeps uploaded avatars in a gocloud.dev blob bucket.
// The bucket URL scheme picks the backend: file://, mem://, gs:// or s3://.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	_ "image/png" // register decoder
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"contacts/config"
	deliverycontext "contacts/internal/delivery/context"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
	"golang.org/x/image/draw"
)

const (
	avatarExt     = ".jpg"
	avatarQuality = 90
	contentType   = "image/jpeg"
	defaultSize   = 250
)

type avatarStorage struct {
	bucket  *blob.Bucket
	baseURL string
	size    int
	now     func() time.Time
	logger  *slog.Logger
}

// Params holds dependencies for the avatar storage, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewAvatarStorage opens the configured bucket and closes it on shutdown.
func NewAvatarStorage(params Params) (service.AvatarStorage, error) {
	cfg := params.Config.Avatar
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("avatar bucket url is required")
	}

	bucket, err := blob.OpenBucket(context.Background(), cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open avatar bucket %s", cfg.BucketURL)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	params.Logger.Info("Avatar bucket opened", slog.String("url", cfg.BucketURL))

	return NewBucketStorage(bucket, cfg.PublicBaseURL, cfg.Size, params.Logger), nil
}

// NewBucketStorage wraps an already opened bucket. The caller owns the bucket.
func NewBucketStorage(bucket *blob.Bucket, publicBaseURL string, size int, logger *slog.Logger) service.AvatarStorage {
	if size <= 0 {
		size = defaultSize
	}

	return &avatarStorage{
		bucket:  bucket,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		size:    size,
		now:     time.Now,
		logger:  logger,
	}
}

// Save decodes the upload, scales it to a size x size square and stores it
// as JPEG under "<key>_<unix seconds>.jpg".
func (s *avatarStorage) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrAvatarInvalid, err.Error())
	}

	dst := image.NewRGBA(image.Rect(0, 0, s.size, s.size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: avatarQuality}); err != nil {
		return "", errors.Wrap(err, "failed to encode avatar")
	}

	name := fmt.Sprintf("%s_%d%s", key, s.now().Unix(), avatarExt)
	err = s.bucket.WriteAll(ctx, name, buf.Bytes(), &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "failed to write avatar")
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Debug("Avatar stored",
		slog.String("name", name),
		slog.String("source_format", format),
	)

	return s.baseURL + "/" + name, nil
}

// Open returns the stored avatar. Unknown names yield domainerrors.ErrNotFound.
func (s *avatarStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !validName(name) {
		return nil, errors.WithStack(domainerrors.ErrNotFound)
	}

	reader, err := s.bucket.NewReader(ctx, name, nil)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return nil, errors.WithStack(domainerrors.ErrNotFound)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to open avatar")
	}

	return reader, nil
}

// validName accepts only flat object names that this storage could have written.
func validName(name string) bool {
	return name != "" &&
		path.Base(name) == name &&
		!strings.HasPrefix(name, ".") &&
		strings.HasSuffix(name, avatarExt)
}
