package dto

import (
	"aifinder/internal/api/services"
)

type Tool struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Price       string           `json:"price"`
	PriceLabel  string           `json:"priceLabel"`
	Description string           `json:"description"`
	Link        string           `json:"link"`
	Functions   []string         `json:"functions"`
	Ratings     map[string][]int `json:"ratings,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	Featured    bool             `json:"featured"`
	Rating      float64          `json:"rating"`
	UserRating  *int             `json:"userRating"`
	Saved       bool             `json:"saved"`
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Total       int    `json:"total"`
}

func ToolFromView(v services.ToolView) Tool {
	t := Tool{
		ID:          v.Tool.ID,
		Name:        v.Tool.Name,
		Price:       string(v.Tool.Price),
		PriceLabel:  v.Tool.Price.Label(),
		Description: v.Tool.Description,
		Link:        v.Tool.Link,
		Functions:   v.Tool.Functions,
		Ratings:     v.Tool.Ratings,
		Tags:        v.Tool.Tags,
		Featured:    v.Tool.Featured,
		Rating:      v.Rating,
		Saved:       v.Saved,
	}
	if v.Rated {
		rating := v.UserRating
		t.UserRating = &rating
	}
	if t.Functions == nil {
		t.Functions = []string{}
	}
	return t
}

func ToolsFromViews(views []services.ToolView) []Tool {
	tools := make([]Tool, len(views))
	for i, v := range views {
		tools[i] = ToolFromView(v)
	}
	return tools
}

func CategoryFromSummary(s services.CategorySummary) Category {
	return Category{
		ID:          s.ID,
		Name:        s.Name,
		Icon:        s.Icon,
		Description: s.Description,
		Total:       s.Total,
	}
}

func CategoriesFromSummaries(summaries []services.CategorySummary) []Category {
	categories := make([]Category, len(summaries))
	for i, s := range summaries {
		categories[i] = CategoryFromSummary(s)
	}
	return categories
}
