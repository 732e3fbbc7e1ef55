package action

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb"
	"go.uber.org/zap"

	"github.com/3leaps/s3find/pkg/objectitem"
	"github.com/3leaps/s3find/pkg/pipeline"
	"github.com/3leaps/s3find/pkg/provider"
)

// Download builds the download handler: streams each item's body to
// <dest>/<key> (or <dest>/<key>.v<version_id> when versioned), refusing
// to overwrite an existing file unless force is set. Delete markers are
// skipped; single-item failures are logged and do not abort the batch.
func Download(c *Context, dest string, force bool) pipeline.Action {
	return func(ctx context.Context, batch []*objectitem.Item) error {
		getter, err := requireCapability[provider.ObjectGetter](c, "object download")
		if err != nil {
			return err
		}

		for _, it := range batch {
			if it.IsDeleteMarker {
				continue
			}

			target := it.DownloadPath(dest)
			c.printf("downloading: %s => %s\n", it.DisplayKey(), target)

			if !force {
				if _, statErr := os.Stat(target); statErr == nil {
					c.Logger.Info("skipping existing file", zap.String("path", target))
					continue
				}
			}

			if err := downloadOne(ctx, getter, c.Bucket, it, target); err != nil {
				c.Logger.Warn("download failed", zap.String("key", it.Key), zap.Error(err))
			}
		}
		return nil
	}
}

func downloadOne(ctx context.Context, getter provider.ObjectGetter, bucket string, it *objectitem.Item, target string) error {
	body, size, err := getter.GetObject(ctx, bucket, it.Key, it.VersionID)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()

	bar := pb.New64(size)
	bar.ShowSpeed = true
	bar.SetUnits(pb.U_BYTES)
	bar.Start()
	defer bar.Finish()

	_, err = io.Copy(f, bar.NewProxyReader(body))
	return err
}
