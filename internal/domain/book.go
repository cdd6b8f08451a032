package domain

type BookStatus string

const (
	BookStatusAvailable BookStatus = "Available"
	BookStatusBorrowed  BookStatus = "Borrowed"
)

type Book struct {
	ID        int32      `json:"id"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	ISBN      string     `json:"isbn"`
	Publisher string     `json:"publisher"`
	Year      int32      `json:"year"`
	Status    BookStatus `json:"status"`
}
