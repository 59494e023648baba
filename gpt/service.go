package gpt

import (
	"context"

	"github.com/kokomiu/kokomiu-api/auth"
)

// SaveInput carries the settings form fields.
type SaveInput struct {
	SettingID    int64
	Version      string
	Instruction  string
	DataType     string
	LearningText string
	FallBackType bool
	FallBackText string
	Files        []Upload
}

// Service owns the setting lifecycle and drives the file-storage collaborator
// when learning data moves between text and files.
type Service struct {
	repo   *Repository
	files  FileStore
	logger auth.Logger
}

type ServiceOption func(*Service)

func WithServiceLogger(l auth.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

func NewService(repo *Repository, files FileStore, opts ...ServiceOption) *Service {
	s := &Service{
		repo:   repo,
		files:  files,
		logger: nil,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) GetSetting(ctx context.Context) (*Setting, error) {
	return s.repo.GetSetting(ctx)
}

func (s *Service) GetSettingByID(ctx context.Context, id int64) (*Setting, error) {
	return s.repo.GetSettingByID(ctx, id)
}

// Save persists the setting. File-backed settings get a vector store with the
// uploaded files attached; switching an existing setting to text tears the
// old vector-store files down first.
func (s *Service) Save(ctx context.Context, in SaveInput) error {
	record := &Setting{
		ID:           in.SettingID,
		Version:      in.Version,
		Instruction:  in.Instruction,
		DataType:     in.DataType,
		LearningText: in.LearningText,
		FallBackType: in.FallBackType,
		FallBackText: in.FallBackText,
	}

	switch in.DataType {
	case DataTypeFile:
		record.LearningText = ""

		if in.SettingID != 0 {
			existing, err := s.repo.GetSettingByID(ctx, in.SettingID)
			if err != nil {
				return err
			}

			record.VCID = existing.VCID
			record.VCFileIDs = existing.VCFileIDs
			record.VCFileNames = existing.VCFileNames
		}

		if record.VCID == "" {
			vcID, err := s.files.CreateVectorStore(ctx)
			if err != nil {
				return err
			}
			record.VCID = vcID
		}

		if len(in.Files) > 0 {
			ids, names, err := s.files.AddFiles(ctx, record.VCID, in.Files)
			if err != nil {
				return err
			}
			record.VCFileIDs = append(record.VCFileIDs, ids...)
			record.VCFileNames = append(record.VCFileNames, names...)
		}

	case DataTypeText:
		if in.SettingID != 0 {
			existing, err := s.repo.GetSettingByID(ctx, in.SettingID)
			if err != nil {
				return err
			}

			if existing.VCID != "" && len(existing.VCFileIDs) > 0 {
				if err := s.files.RemoveFiles(ctx, existing.VCID, existing.VCFileIDs); err != nil {
					return err
				}
			}
		}

		record.VCID = ""
		record.VCFileIDs = nil
		record.VCFileNames = nil
	}

	return s.repo.Save(ctx, record)
}
