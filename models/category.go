package models

// CategoryType is one of the five fixed study spot categories.
type CategoryType string

const (
	CategoryLibrary CategoryType = "library"
	CategoryCafe    CategoryType = "cafe"
	CategoryQuiet   CategoryType = "quiet"
	CategoryOutdoor CategoryType = "outdoor"
	CategoryGroup   CategoryType = "group"
)

// DefaultCategory is what unrecognised category ids are coerced to.
const DefaultCategory = CategoryLibrary

var validCategories = []CategoryType{
	CategoryLibrary,
	CategoryCafe,
	CategoryQuiet,
	CategoryOutdoor,
	CategoryGroup,
}

// ValidateCategoryType reports whether id names a known category.
func ValidateCategoryType(id string) (CategoryType, bool) {
	for _, c := range validCategories {
		if string(c) == id {
			return c, true
		}
	}
	return "", false
}

// CoerceCategoryType never fails: unknown ids become DefaultCategory.
func CoerceCategoryType(id string) CategoryType {
	if c, ok := ValidateCategoryType(id); ok {
		return c
	}
	return DefaultCategory
}

// Category is a display entry from the categories table.
type Category struct {
	ID    CategoryType `json:"id"`
	Name  string       `json:"name"`
	Icon  Icon         `json:"icon"`
	Glyph string       `json:"glyph"`
	Color string       `json:"color"`
}

// Amenity is an open-ended amenity tag from the amenities table.
type Amenity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  Icon   `json:"icon"`
	Glyph string `json:"glyph"`
}
