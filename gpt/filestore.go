package gpt

import (
	"context"

	"github.com/goliatone/go-errors"
	openai "github.com/sashabaranov/go-openai"

	"github.com/kokomiu/kokomiu-api/auth"
)

const vectorStoreName = "gpt_vc"

// Upload is one file submitted through the settings form.
type Upload struct {
	Name string
	Data []byte
}

// FileStore is the external AI file-storage collaborator. It is only invoked
// after the admin session check has passed.
type FileStore interface {
	CreateVectorStore(ctx context.Context) (string, error)
	AddFiles(ctx context.Context, vcID string, files []Upload) (ids, names []string, err error)
	RemoveFiles(ctx context.Context, vcID string, fileIDs []string) error
}

// OpenAIFileStore implements FileStore against the OpenAI vector-store API.
type OpenAIFileStore struct {
	client *openai.Client
	logger auth.Logger
}

var _ FileStore = (*OpenAIFileStore)(nil)

func NewOpenAIFileStore(apiKey string, logger auth.Logger) *OpenAIFileStore {
	return &OpenAIFileStore{
		client: openai.NewClient(apiKey),
		logger: logger,
	}
}

func (s *OpenAIFileStore) CreateVectorStore(ctx context.Context) (string, error) {
	vs, err := s.client.CreateVectorStore(ctx, openai.VectorStoreRequest{
		Name: vectorStoreName,
	})
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to create vector store")
	}
	return vs.ID, nil
}

// AddFiles uploads each file for assistant use and links the batch to the
// vector store. Both uploads and the batch link must succeed.
func (s *OpenAIFileStore) AddFiles(ctx context.Context, vcID string, files []Upload) ([]string, []string, error) {
	var ids, names []string

	for _, f := range files {
		created, err := s.client.CreateFileBytes(ctx, openai.FileBytesRequest{
			Name:    f.Name,
			Bytes:   f.Data,
			Purpose: openai.PurposeAssistants,
		})
		if err != nil {
			return nil, nil, errors.Wrap(err, errors.CategoryInternal, "failed to upload file")
		}
		ids = append(ids, created.ID)
		names = append(names, f.Name)
	}

	if len(ids) > 0 {
		_, err := s.client.CreateVectorStoreFileBatch(ctx, vcID, openai.VectorStoreFileBatchRequest{
			FileIDs: ids,
		})
		if err != nil {
			return nil, nil, errors.Wrap(err, errors.CategoryInternal, "failed to attach files to vector store")
		}
	}

	return ids, names, nil
}

// RemoveFiles unlinks and deletes files. Individual failures are logged and
// skipped so a half-deleted batch does not wedge the setting.
func (s *OpenAIFileStore) RemoveFiles(ctx context.Context, vcID string, fileIDs []string) error {
	for _, fid := range fileIDs {
		if err := s.client.DeleteVectorStoreFile(ctx, vcID, fid); err != nil {
			s.logger.Warn("vector store %s unlink of file %s failed: %v", vcID, fid, err)
		}
	}

	for _, fid := range fileIDs {
		if err := s.client.DeleteFile(ctx, fid); err != nil {
			s.logger.Warn("file %s delete failed: %v", fid, err)
		}
	}

	return nil
}
