package dto

// SignedURLRequest names the stored object to grant access to.
type SignedURLRequest struct {
	Path string `json:"path"`
}

// SignedURLResponse carries the time-bounded link.
type SignedURLResponse struct {
	URL string `json:"url"`
}
