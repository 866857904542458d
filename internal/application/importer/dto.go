package importer

// UpdateFeedRequest asks for a partner feed import from a URL
type UpdateFeedRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// ImportResult summarizes a committed feed import
type ImportResult struct {
	Shop       string `json:"shop"`
	Categories int    `json:"categories"`
	Goods      int    `json:"goods"`
}
