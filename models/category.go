package models

import (
	"strings"

	"github.com/go-playground/validator"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Category string

const (
	CategoryTops        Category = "Tops"
	CategoryPants       Category = "Pants"
	CategorySkirts      Category = "Skirts"
	CategoryDresses     Category = "Dresses"
	CategoryOuterwear   Category = "Outerwear"
	CategoryShoes       Category = "Shoes"
	CategoryAccessories Category = "Accessories"
)

var Categories = []Category{
	CategoryTops,
	CategoryPants,
	CategorySkirts,
	CategoryDresses,
	CategoryOuterwear,
	CategoryShoes,
	CategoryAccessories,
}

var titleCaser = cases.Title(language.English)

// NormalizeCategory maps user input such as "outerwear" or " SHOES " onto the
// canonical spelling. Unknown values are returned title-cased and fail IsValid.
func NormalizeCategory(value string) Category {
	return Category(titleCaser.String(strings.TrimSpace(value)))
}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

func ValidateCategory(fl validator.FieldLevel) bool {
	return NormalizeCategory(fl.Field().String()).IsValid()
}
