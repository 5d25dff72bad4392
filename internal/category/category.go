// Package category is the static registry of venue categories.
package category

import "strings"

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

var categories = []Category{
	{ID: "cafe", Name: "Cafe", Icon: "coffee"},
	{ID: "library", Name: "Library", Icon: "book"},
	{ID: "bookstore", Name: "Bookstore", Icon: "book-open"},
	{ID: "park", Name: "Park", Icon: "tree"},
	{ID: "coworking", Name: "Coworking Space", Icon: "laptop"},
	{ID: "community-center", Name: "Community Center", Icon: "users"},
	{ID: "bar", Name: "Bar & Pub", Icon: "beer"},
	{ID: "restaurant", Name: "Restaurant", Icon: "utensils"},
	{ID: "gym", Name: "Gym", Icon: "dumbbell"},
	{ID: "game-store", Name: "Game Store", Icon: "dice"},
	{ID: "makerspace", Name: "Makerspace", Icon: "wrench"},
	{ID: "museum", Name: "Museum", Icon: "landmark"},
}

var byID = func() map[string]*Category {
	m := make(map[string]*Category, len(categories))
	for i := range categories {
		m[categories[i].ID] = &categories[i]
	}
	return m
}()

// GetCategoryByID returns nil for unknown ids. Lookup ignores case.
func GetCategoryByID(id string) *Category {
	c, ok := byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil
	}
	cp := *c
	return &cp
}

// All lists the categories in display order.
func All() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}
