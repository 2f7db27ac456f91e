package artworks

// Artwork is a gallery record. Ownership (UserID) is set at creation
// and never changes.
type Artwork struct {
	ID          int     `json:"id"`
	UserID      int     `json:"user_id"`
	Image       string  `json:"image"`
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	Year        *int    `json:"year"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
}

// ArtworkInput carries the mutable fields for create and update. Year
// and description are optional and stored as NULL when absent.
type ArtworkInput struct {
	Image       string  `json:"image"`
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	Year        *int    `json:"year"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
}

// UpdateArtworkResponse acknowledges an update with the new row.
type UpdateArtworkResponse struct {
	Message string  `json:"message"`
	Artwork Artwork `json:"artwork"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
