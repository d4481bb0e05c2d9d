package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ozanatli/microsite-backend/internal/uploader"
)

// UploadFile is one file from a multipart bulk upload.
type UploadFile struct {
	Name string
	Data []byte
}

// UploadAll pushes every file to the image host concurrently and returns the
// resulting URLs in input order. Any failure aborts the whole batch.
func UploadAll(ctx context.Context, client uploader.Client, files []UploadFile) ([]string, error) {
	urls := make([]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			url, err := client.Upload(ctx, f.Name, f.Data)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}
