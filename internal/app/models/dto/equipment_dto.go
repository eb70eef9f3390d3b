package dto

import "github.com/yigit/bandroster/internal/app/models"

// EquipmentListQuery holds inventory list query parameters
type EquipmentListQuery struct {
	Q       string `form:"q"`
	Section string `form:"section"`
}

// ToFilter converts the query into a repository filter
func (q EquipmentListQuery) ToFilter() models.EquipmentFilter {
	return models.EquipmentFilter{Search: q.Q, Section: q.Section}
}

// UnitRequest is implemented by every add-unit request body
type UnitRequest interface {
	ToSpec() models.UnitSpec
}

// CreateInstrumentRequest adds an instrument of a catalog type
type CreateInstrumentRequest struct {
	TypeID int64  `json:"typeId" validate:"required,gt=0" example:"3"`
	Serial string `json:"serial" validate:"max=50" example:"CL-44321"`
}

// ToSpec implements UnitRequest
func (r CreateInstrumentRequest) ToSpec() models.UnitSpec {
	return models.NewInstrument(r.TypeID, r.Serial)
}

// CreateUniformRequest adds a coat and pant pair
type CreateUniformRequest struct {
	CoatSize   string `json:"coatSize" validate:"max=20" example:"40R"`
	PantSize   string `json:"pantSize" validate:"max=20" example:"32"`
	CoatNumber string `json:"coatNumber" validate:"max=20" example:"C-101"`
	PantNumber string `json:"pantNumber" validate:"max=20" example:"P-101"`
}

// ToSpec implements UnitRequest
func (r CreateUniformRequest) ToSpec() models.UnitSpec {
	return models.NewUniform(r.CoatSize, r.PantSize, r.CoatNumber, r.PantNumber)
}

// CreateShakoRequest adds a shako
type CreateShakoRequest struct {
	Size string `json:"size" validate:"required,max=20" example:"7 1/4"`
}

// ToSpec implements UnitRequest
func (r CreateShakoRequest) ToSpec() models.UnitSpec {
	return models.NewShako(r.Size)
}

// NewUnitRequest returns an empty request body for category
func NewUnitRequest(category models.Category) UnitRequest {
	switch category {
	case models.CategoryInstrument:
		return &CreateInstrumentRequest{}
	case models.CategoryUniform:
		return &CreateUniformRequest{}
	case models.CategoryShako:
		return &CreateShakoRequest{}
	default:
		return nil
	}
}

// UnitCreatedResponse identifies a newly added unit
type UnitCreatedResponse struct {
	Category models.Category `json:"category" example:"instrument"`
	UnitID   int64           `json:"unitId" example:"12"`
}

// AssignUnitRequest checks a unit out to a student
type AssignUnitRequest struct {
	StudentID               int64  `json:"studentId" validate:"required,gt=0" example:"300819037"`
	ConditionNotes          string `json:"conditionNotes" validate:"max=500" example:"Good pads"`
	OverrideSectionMismatch bool   `json:"overrideSectionMismatch"`
}

// UnassignUnitRequest returns a unit
type UnassignUnitRequest struct {
	ConditionNotes string `json:"conditionNotes" validate:"max=500" example:"Valve 2 sticky"`
}
