package dto

import (
	"time"

	"cowork/shared/constant"
	"cowork/shared/model"
	"cowork/shared/timezone"
)

// Metadata is the audit block embedded in responses. Zero times render as absent.
type Metadata struct {
	CreatedAt  string `json:"created_at,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(audit model.Metadata) {
	*m = Metadata{
		CreatedAt:  auditTime(audit.CreatedAt),
		ModifiedAt: auditTime(audit.ModifiedAt),
		CreatedBy:  audit.CreatedBy,
		ModifiedBy: audit.ModifiedBy,
	}
}

func auditTime(at time.Time) string {
	if at.IsZero() {
		return constant.Empty
	}

	return timezone.Format(at, constant.DateFormat)
}
