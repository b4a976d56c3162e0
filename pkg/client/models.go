package client

// Author as returned by the API
type Author struct {
	ID        uint   `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Bio       string `json:"bio"`
	Books     []Book `json:"books,omitempty"`
}

// Book as returned by the API. File is the base64 image content.
type Book struct {
	ID       uint     `json:"id"`
	Title    string   `json:"title"`
	Year     *int     `json:"year,omitempty"`
	Isbn     string   `json:"isbn"`
	Summary  string   `json:"summary"`
	Image    string   `json:"image"`
	File     string   `json:"file,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	AuthorID uint     `json:"author_id"`
	Author   *Author  `json:"author,omitempty"`
}
