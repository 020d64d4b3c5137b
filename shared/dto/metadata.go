package dto

import (
	"time"

	"litrato/shared/constant"
	"litrato/shared/model"
	"litrato/shared/timezone"
)

// Metadata is the audit trail rendered in the application time zone. Rows
// that were never modified leave the modified fields out.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedAt string `json:"modified_at,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(src model.Metadata) {
	*m = Metadata{
		CreatedAt:  stamp(src.CreatedAt),
		CreatedBy:  src.CreatedBy,
		ModifiedAt: stamp(src.ModifiedAt),
		ModifiedBy: src.ModifiedBy,
	}
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return timezone.Format(t, constant.DateFormat)
}
