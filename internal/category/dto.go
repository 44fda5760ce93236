package category

type CategoryResponse struct {
	Name string `json:"name"`
	// Tracked categories get their own total in the client.
	Tracked bool `json:"tracked"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	// Strict reports whether the service rejects unknown categories.
	Strict bool `json:"strict"`
}
