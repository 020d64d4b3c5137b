package model

import (
	"litrato/internal/domains/availability/schedule"
	"litrato/shared/model"
)

const (
	TableName  = "packages"
	EntityName = "package"

	FieldID            = "id"
	FieldName          = "name"
	FieldDescription   = "description"
	FieldPrice         = "price"
	FieldDurationHours = "duration_hours"
	FieldImage         = "image"
	FieldActive        = "active"
)

type Package struct {
	ID            string   `db:"id"`
	Name          string   `db:"name"`
	Description   string   `db:"description"`
	Price         int64    `db:"price"`
	DurationHours *float64 `db:"duration_hours"`
	Image         string   `db:"image"`
	Active        bool     `db:"active"`
	model.Metadata
}

func (p Package) ToSchedule() schedule.Package {
	return schedule.Package{
		ID:            p.ID,
		Name:          p.Name,
		DurationHours: p.DurationHours,
	}
}
