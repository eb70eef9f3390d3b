package models

import "strings"

// InstrumentType is a catalog entry such as "TRUMPET".
type InstrumentType struct {
	TypeID   int64   `json:"typeId" db:"type_id"`
	TypeName string  `json:"typeName" db:"type_name"`
	Section  Section `json:"section" db:"section"`
}

// Holding is the checkout state of a single unit.
type Holding struct {
	Category       Category `json:"category"`
	UnitID         int64    `json:"unitId"`
	CheckedOutTo   *int64   `json:"checkedOutTo,omitempty"`
	CheckedOutDate *string  `json:"checkedOutDate,omitempty"`
	ConditionNotes *string  `json:"conditionNotes,omitempty"`
	// Description is a short label such as "TRUMPET #TR-88012".
	Description string `json:"description,omitempty"`
}

// Assigned reports whether the unit currently has a holder.
func (h Holding) Assigned() bool {
	return h.CheckedOutTo != nil
}

// Checkout fields shared by every unit.
type Checkout struct {
	ConditionNotes *string `json:"conditionNotes,omitempty"`
	CheckedOutTo   *int64  `json:"checkedOutTo,omitempty"`
	CheckedOutDate *string `json:"checkedOutDate,omitempty"`
	HolderName     string  `json:"holderName,omitempty"`
}

// Instrument is a numbered instrument unit with its catalog type joined in.
type Instrument struct {
	InstrumentID int64   `json:"instrumentId"`
	TypeID       int64   `json:"typeId"`
	TypeName     string  `json:"typeName"`
	Section      Section `json:"section"`
	Serial       string  `json:"serial"`
	Checkout
}

// Uniform is a coat and pant pair.
type Uniform struct {
	UniformID  int64  `json:"uniformId"`
	CoatSize   string `json:"coatSize"`
	PantSize   string `json:"pantSize"`
	CoatNumber string `json:"coatNumber"`
	PantNumber string `json:"pantNumber"`
	Checkout
}

// Shako is a marching hat.
type Shako struct {
	ShakoID int64  `json:"shakoId"`
	Size    string `json:"size"`
	Checkout
}

// EquipmentFilter narrows inventory listings.
type EquipmentFilter struct {
	Search string
	// Section applies to instruments only.
	Section string
}

// UnitSpec describes a new unit to add to the inventory.
type UnitSpec interface {
	Category() Category
	// Columns returns the descriptive column values for the insert.
	Columns() map[string]interface{}
}

type instrumentSpec struct {
	typeID int64
	serial string
}

// NewInstrument describes an instrument of the given catalog type.
func NewInstrument(typeID int64, serial string) UnitSpec {
	return instrumentSpec{typeID: typeID, serial: strings.TrimSpace(serial)}
}

func (s instrumentSpec) Category() Category { return CategoryInstrument }

func (s instrumentSpec) Columns() map[string]interface{} {
	return map[string]interface{}{"type_id": s.typeID, "serial": s.serial}
}

// InstrumentTypeID exposes the catalog reference for existence checks.
func (s instrumentSpec) InstrumentTypeID() int64 { return s.typeID }

type uniformSpec struct {
	coatSize, pantSize, coatNumber, pantNumber string
}

// NewUniform describes a uniform by sizes and numbers.
func NewUniform(coatSize, pantSize, coatNumber, pantNumber string) UnitSpec {
	return uniformSpec{
		coatSize:   strings.TrimSpace(coatSize),
		pantSize:   strings.TrimSpace(pantSize),
		coatNumber: strings.TrimSpace(coatNumber),
		pantNumber: strings.TrimSpace(pantNumber),
	}
}

func (s uniformSpec) Category() Category { return CategoryUniform }

func (s uniformSpec) Columns() map[string]interface{} {
	return map[string]interface{}{
		"coat_size":   s.coatSize,
		"pant_size":   s.pantSize,
		"coat_number": s.coatNumber,
		"pant_number": s.pantNumber,
	}
}

type shakoSpec struct {
	size string
}

// NewShako describes a shako of the given size.
func NewShako(size string) UnitSpec {
	return shakoSpec{size: strings.TrimSpace(size)}
}

func (s shakoSpec) Category() Category { return CategoryShako }

func (s shakoSpec) Columns() map[string]interface{} {
	return map[string]interface{}{"size": s.size}
}

// InstrumentTyped is implemented by specs that reference the instrument catalog.
type InstrumentTyped interface {
	InstrumentTypeID() int64
}
