package domain

// Category is one of the fixed labels the classifier may assign.
type Category string

const (
	CategoryAI          Category = "AI"
	CategoryWeb         Category = "Web"
	CategoryMobile      Category = "Mobile"
	CategorySecurity    Category = "Security"
	CategoryHardware    Category = "Hardware"
	CategoryBusiness    Category = "Business"
	CategoryProgramming Category = "Programming"
	CategoryOther       Category = "Other"
)

// CategoryAll is the feed filter value meaning "no category filter".
const CategoryAll = "All"

// Categories lists the closed set in display order.
var Categories = []Category{
	CategoryAI,
	CategoryWeb,
	CategoryMobile,
	CategorySecurity,
	CategoryHardware,
	CategoryBusiness,
	CategoryProgramming,
	CategoryOther,
}

// ParseCategory reports whether s is exactly one of the fixed categories.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}
