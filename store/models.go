package store

// Photo is one image of the loaded folder. Order is its position in the slideshow.
type Photo struct {
	PhotoName string `json:"photo_name"`
	Path      string `json:"path"`
	Order     int    `json:"order"`
}
