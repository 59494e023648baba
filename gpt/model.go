package gpt

import (
	"time"

	"github.com/uptrace/bun"
)

// DataType selects where the assistant's learning data comes from.
const (
	DataTypeFile = "file"
	DataTypeText = "text"
)

// Setting is the GPT configuration backing tb_gpt_settings. The vc_* columns
// reference the external AI file-storage collaborator (vector store id plus
// the uploaded file ids/names).
type Setting struct {
	bun.BaseModel `bun:"table:tb_gpt_settings,alias:gpt"`

	ID           int64      `bun:"id,pk,autoincrement" json:"id"`
	Version      string     `bun:"version,notnull" json:"version"`
	Instruction  string     `bun:"instruction" json:"instruction,omitempty"`
	DataType     string     `bun:"data_type,notnull" json:"data_type"`
	LearningText string     `bun:"learning_text" json:"learning_text,omitempty"`
	FallBackType bool       `bun:"fall_back_type" json:"fall_back_type"`
	FallBackText string     `bun:"fall_back_text" json:"fall_back_text,omitempty"`
	VCID         string     `bun:"vc_id" json:"vc_id,omitempty"`
	VCFileIDs    []string   `bun:"vc_file_ids,type:json" json:"vc_file_ids,omitempty"`
	VCFileNames  []string   `bun:"vc_file_names,type:json" json:"vc_file_names,omitempty"`
	CreatedAt    *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
