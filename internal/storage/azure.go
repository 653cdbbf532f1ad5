package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/rs/zerolog"

	"faktura-ocr/internal/logger"
)

// AzureBlobStore implements BlobStore on an Azure storage container.
type AzureBlobStore struct {
	client    *azblob.Client
	container string
	log       zerolog.Logger
}

// NewAzureBlobStore creates a blob store from a connection string.
func NewAzureBlobStore(connectionString, container string) (*AzureBlobStore, error) {
	const op = "NewAzureBlobStore"

	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, WrapStorageError(op, err, "invalid connection string")
	}

	return &AzureBlobStore{
		client:    client,
		container: container,
		log:       logger.WithComponent("storage"),
	}, nil
}

// Read implements BlobStore.
func (s *AzureBlobStore) Read(ctx context.Context, path string) ([]byte, error) {
	const op = "Read"

	resp, err := s.client.DownloadStream(ctx, s.container, path, nil)
	if err != nil {
		return nil, WrapStorageError(op, fmt.Errorf("%w: %v", ErrRead, err), path)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapStorageError(op, fmt.Errorf("%w: %v", ErrRead, err), path)
	}
	return content, nil
}

// Save implements BlobStore.
func (s *AzureBlobStore) Save(ctx context.Context, path string, content []byte) error {
	const op = "Save"

	if _, err := s.client.UploadBuffer(ctx, s.container, path, content, nil); err != nil {
		return WrapStorageError(op, fmt.Errorf("%w: %v", ErrSave, err), path)
	}
	return nil
}

// Move implements BlobStore.
func (s *AzureBlobStore) Move(ctx context.Context, fromPath, toPath string) (string, error) {
	const op = "Move"

	content, err := s.Read(ctx, fromPath)
	if err != nil {
		return "", WrapStorageError(op, fmt.Errorf("%w: %v", ErrMove, err), fromPath)
	}
	if err := s.Save(ctx, toPath, content); err != nil {
		return "", WrapStorageError(op, fmt.Errorf("%w: %v", ErrMove, err), toPath)
	}
	if _, err := s.client.DeleteBlob(ctx, s.container, fromPath, nil); err != nil {
		return "", WrapStorageError(op, fmt.Errorf("%w: %v", ErrMove, err),
			fmt.Sprintf("copied to %s but could not delete source %s", toPath, fromPath))
	}

	s.log.Debug().Str("from", fromPath).Str("to", toPath).Msg("blob moved")
	return toPath, nil
}

// List implements BlobStore.
func (s *AzureBlobStore) List(ctx context.Context, prefix string) ([]string, error) {
	const op = "List"

	var paths []string
	pager := s.client.NewListBlobsFlatPager(s.container, &azblob.ListBlobsFlatOptions{
		Prefix: &prefix,
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, WrapStorageError(op, fmt.Errorf("%w: %v", ErrRead, err), prefix)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				paths = append(paths, *item.Name)
			}
		}
	}
	return paths, nil
}
