package dto

import (
	"mime/multipart"

	"litrato/internal/domains/packages/model"
	"litrato/shared"
	gDto "litrato/shared/dto"
	gModel "litrato/shared/model"
	"litrato/shared/timezone"

	"github.com/google/uuid"
)

type CreatePackageRequest struct {
	Name          string                `json:"name"           validate:"required,max=100"`
	Description   string                `json:"description"    validate:"omitempty,max=1000"`
	Price         int64                 `json:"price"          validate:"omitempty,min=0"`
	DurationHours *float64              `json:"duration_hours" validate:"omitempty,gt=0,lte=14"`
	Image         *multipart.FileHeader `json:"image"          validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile     multipart.File        `json:"-"`
	Active        *bool                 `json:"active"         validate:"omitempty"`
}

func (c *CreatePackageRequest) ToModel(user string, imageURL string) model.Package {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Package{
		ID:            uuid.NewString(),
		Name:          c.Name,
		Description:   c.Description,
		Price:         c.Price,
		DurationHours: c.DurationHours,
		Image:         imageURL,
		Active:        active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdatePackageRequest struct {
	Name          string                `db:"name"           json:"name"           validate:"omitempty,max=100"`
	Description   string                `db:"description"    json:"description"    validate:"omitempty,max=1000"`
	Price         *int64                `db:"price"          json:"price"          validate:"omitempty,min=0"`
	DurationHours *float64              `db:"duration_hours" json:"duration_hours" validate:"omitempty,gt=0,lte=14"`
	Image         *multipart.FileHeader `json:"image"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile     multipart.File        `json:"-"`
	Active        *bool                 `db:"active"         json:"active"         validate:"omitempty"`
}

type PackageResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         int64    `json:"price"`
	DurationHours *float64 `json:"duration_hours"`
	Image         string   `json:"image"`
	Active        bool     `json:"active"`
	gDto.Metadata
}

func (r *PackageResponse) FromModel(model model.Package) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.DurationHours = model.DurationHours
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetPackagesResponse struct {
	Packages  []PackageResponse `json:"packages"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPackagesResponse) FromModels(models []model.Package, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Packages = make([]PackageResponse, len(models))
	for i, mod := range models {
		r.Packages[i].FromModel(mod)
	}
}
