package models

// ============================================================
// Author DTOs
// ============================================================

// AuthorDTO is the read model for an author
type AuthorDTO struct {
	ID        uint      `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Bio       string    `json:"bio"`
	Books     []BookDTO `json:"books,omitempty"`
}

// AuthorCreateDTO is the body of POST /api/authors
type AuthorCreateDTO struct {
	Firstname string `json:"firstname" validate:"required,max=50"`
	Lastname  string `json:"lastname" validate:"required,max=50"`
	Bio       string `json:"bio" validate:"max=250"`
}

// AuthorUpdateDTO is the body of PUT /api/authors/:id
type AuthorUpdateDTO struct {
	ID        uint   `json:"id"`
	Firstname string `json:"firstname" validate:"required,max=50"`
	Lastname  string `json:"lastname" validate:"required,max=50"`
	Bio       string `json:"bio" validate:"max=250"`
}

func (a *Author) ToDTO() AuthorDTO {
	dto := AuthorDTO{
		ID:        a.ID,
		Firstname: a.Firstname,
		Lastname:  a.Lastname,
		Bio:       a.Bio,
	}
	for i := range a.Books {
		dto.Books = append(dto.Books, a.Books[i].ToDTO())
	}
	return dto
}

func (d *AuthorCreateDTO) ToModel() *Author {
	return &Author{Firstname: d.Firstname, Lastname: d.Lastname, Bio: d.Bio}
}

func (d *AuthorUpdateDTO) ToModel() *Author {
	return &Author{ID: d.ID, Firstname: d.Firstname, Lastname: d.Lastname, Bio: d.Bio}
}

// ============================================================
// Book DTOs
// ============================================================

// BookDTO is the read model for a book. File carries the base64 image
// content when the referenced asset exists.
type BookDTO struct {
	ID       uint       `json:"id"`
	Title    string     `json:"title"`
	Year     *int       `json:"year"`
	Isbn     string     `json:"isbn"`
	Summary  string     `json:"summary"`
	Image    string     `json:"image"`
	File     string     `json:"file,omitempty"`
	Price    *float64   `json:"price"`
	AuthorID uint       `json:"author_id"`
	Author   *AuthorDTO `json:"author,omitempty"`
}

// BookCreateDTO is the body of POST /api/books
type BookCreateDTO struct {
	Title    string   `json:"title" validate:"required,max=100"`
	Year     *int     `json:"year"`
	Isbn     string   `json:"isbn" validate:"required,max=20"`
	Summary  string   `json:"summary" validate:"max=500"`
	Image    string   `json:"image" validate:"max=255"`
	File     string   `json:"file"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	AuthorID uint     `json:"author_id" validate:"required"`
}

// BookUpdateDTO is the body of PUT /api/books/:id
type BookUpdateDTO struct {
	ID       uint     `json:"id"`
	Title    string   `json:"title" validate:"required,max=100"`
	Year     *int     `json:"year"`
	Isbn     string   `json:"isbn" validate:"required,max=20"`
	Summary  string   `json:"summary" validate:"max=500"`
	Image    string   `json:"image" validate:"max=255"`
	File     string   `json:"file"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	AuthorID uint     `json:"author_id" validate:"required"`
}

func (b *Book) ToDTO() BookDTO {
	dto := BookDTO{
		ID:       b.ID,
		Title:    b.Title,
		Year:     b.Year,
		Isbn:     b.Isbn,
		Summary:  b.Summary,
		Image:    b.Image,
		Price:    b.Price,
		AuthorID: b.AuthorID,
	}
	if b.Author != nil {
		author := AuthorDTO{
			ID:        b.Author.ID,
			Firstname: b.Author.Firstname,
			Lastname:  b.Author.Lastname,
			Bio:       b.Author.Bio,
		}
		dto.Author = &author
	}
	return dto
}

func (d *BookCreateDTO) ToModel() *Book {
	return &Book{
		Title:    d.Title,
		Year:     d.Year,
		Isbn:     d.Isbn,
		Summary:  d.Summary,
		Image:    d.Image,
		Price:    d.Price,
		AuthorID: d.AuthorID,
	}
}

func (d *BookUpdateDTO) ToModel() *Book {
	return &Book{
		ID:       d.ID,
		Title:    d.Title,
		Year:     d.Year,
		Isbn:     d.Isbn,
		Summary:  d.Summary,
		Image:    d.Image,
		Price:    d.Price,
		AuthorID: d.AuthorID,
	}
}
