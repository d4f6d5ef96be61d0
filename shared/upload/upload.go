// Package upload stores multipart form files in object storage and undoes the
// stored objects when the database write that references them fails.
package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"sync"

	"cowork/infras/s3"
	"cowork/shared"
	"cowork/shared/constant"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

type Batch struct {
	storage s3.S3
	folder  string

	mu   sync.Mutex
	keys []string
}

func NewBatch(storage s3.S3, folder string) *Batch {
	return &Batch{
		storage: storage,
		folder:  folder,
	}
}

// Put uploads the file and returns its public URL. A nil header yields an empty URL.
func (b *Batch) Put(ctx context.Context, header *multipart.FileHeader) (string, error) {
	if header == nil {
		return constant.Empty, nil
	}

	file, err := header.Open()
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to open %s: %w", header.Filename, err)
	}
	defer file.Close()

	contentType := header.Header.Get(constant.RequestHeaderContentType)
	if contentType == constant.Empty {
		if detected, err := mimetype.DetectReader(file); err == nil {
			contentType = detected.String()
		}

		if _, err = file.Seek(0, io.SeekStart); err != nil {
			return constant.Empty, fmt.Errorf("failed to rewind %s: %w", header.Filename, err)
		}
	}

	object := s3.Object{
		Name:        shared.ObjectName(header.Filename),
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	}

	url, err := b.storage.Upload(ctx, b.folder, object)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload %s: %w", header.Filename, err)
	}

	b.mu.Lock()
	b.keys = append(b.keys, path.Join(b.folder, object.Name))
	b.mu.Unlock()

	return url, nil
}

// PutAll uploads every header in order. On failure the files uploaded so far stay recorded for Rollback.
func (b *Batch) PutAll(ctx context.Context, headers []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(headers))

	for _, header := range headers {
		url, err := b.Put(ctx, header)
		if err != nil {
			return nil, err
		}

		urls = append(urls, url)
	}

	return urls, nil
}

// Rollback deletes every object stored through the batch.
func (b *Batch) Rollback(ctx context.Context) {
	b.mu.Lock()
	keys := b.keys
	b.keys = nil
	b.mu.Unlock()

	for _, key := range keys {
		if err := b.storage.Delete(ctx, key); err != nil {
			log.Error().Err(err).Str("object", key).Msg("failed to remove orphaned upload")
		}
	}
}

// Remove deletes previously stored objects by their public URL.
func Remove(ctx context.Context, storage s3.S3, urls ...string) {
	for _, url := range urls {
		if url == constant.Empty {
			continue
		}

		key := storage.KeyFromURL(url)
		if key == constant.Empty {
			continue
		}

		if err := storage.Delete(ctx, key); err != nil {
			log.Error().Err(err).Str("object", key).Msg("failed to remove replaced upload")
		}
	}
}
