package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Section is the band section a student marches in or an instrument belongs to.
type Section string

const (
	SectionWoodwind   Section = "WOODWIND"
	SectionBrass      Section = "BRASS"
	SectionPercussion Section = "PERCUSSION"
	SectionFlagCorp   Section = "FLAG CORP"
	SectionDrumMajor  Section = "DRUM MAJOR"
	SectionOther      Section = "OTHER"
)

// Sections lists every section in display order.
var Sections = []Section{
	SectionWoodwind, SectionBrass, SectionPercussion,
	SectionFlagCorp, SectionDrumMajor, SectionOther,
}

// Classifications are the accepted academic years; "" means unknown.
var Classifications = []string{"", "Freshman", "Sophomore", "Junior", "Senior", "Graduate"}

// ShirtSizes are the accepted shirt sizes; "" means not recorded.
var ShirtSizes = []string{"", "XS", "S", "M", "L", "XL", "XXL", "XXXL"}

// ShoeSizes returns "" followed by 5 through 15 in half sizes.
func ShoeSizes() []string {
	sizes := []string{""}
	for half := 10; half <= 30; half++ {
		sizes = append(sizes, FormatShoeSize(float64(half)/2))
	}
	return sizes
}

// FormatShoeSize renders 9 as "9" and 9.5 as "9.5".
func FormatShoeSize(size float64) string {
	return strconv.FormatFloat(size, 'f', -1, 64)
}

// Category identifies one kind of checkable equipment.
type Category string

const (
	CategoryInstrument Category = "instrument"
	CategoryUniform    Category = "uniform"
	CategoryShako      Category = "shako"
)

// Categories lists every equipment category.
var Categories = []Category{CategoryInstrument, CategoryUniform, CategoryShako}

// ParseCategory accepts singular or plural names in any case.
func ParseCategory(raw string) (Category, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), "s") {
	case string(CategoryInstrument):
		return CategoryInstrument, nil
	case string(CategoryUniform):
		return CategoryUniform, nil
	case string(CategoryShako):
		return CategoryShako, nil
	}
	return "", fmt.Errorf("unknown equipment category %q", raw)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryInstrument, CategoryUniform, CategoryShako:
		return true
	}
	return false
}

// Label is the human readable category name.
func (c Category) Label() string {
	switch c {
	case CategoryInstrument:
		return "Instrument"
	case CategoryUniform:
		return "Uniform"
	case CategoryShako:
		return "Shako"
	}
	return string(c)
}
