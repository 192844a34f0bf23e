package models

// Category is a static reference entity. The list below is the single
// source of truth for both the /categories endpoint and create-time
// validation, so the server enumeration and the form options cannot drift.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Categories is the fixed enumeration served to clients, in display order.
var Categories = []Category{
	{ID: "supermarket", Name: "スーパー・買い物", Icon: "🛒"},
	{ID: "seasoning", Name: "調味料・代用品", Icon: "🧂"},
	{ID: "cosmetics", Name: "コスメ・美容", Icon: "💄"},
	{ID: "housing", Name: "住まい・インテリア", Icon: "🏠"},
	{ID: "health", Name: "健康・医療", Icon: "🏥"},
	{ID: "tips", Name: "日常の知恵", Icon: "💡"},
	{ID: "travel", Name: "旅行・観光", Icon: "✈️"},
	{ID: "work", Name: "仕事・手続き", Icon: "📋"},
}

// ValidCategory reports whether s names a known category. Clients send
// either the category ID or its display name, so both are accepted.
// Matching is exact and case-sensitive.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if s == c.ID || s == c.Name {
			return true
		}
	}
	return false
}
