package flatfile

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"library-backend/internal/domain"
	"library-backend/internal/logger"
	"library-backend/internal/repository"
)

const bookHeader = "id,title,author,isbn,publisher,year,status"

type bookRepository struct {
	path string
}

func NewBookRepository(path string) repository.BookRepository {
	return &bookRepository{path: path}
}

func (r *bookRepository) LoadAll(ctx context.Context) ([]domain.Book, error) {
	lines, err := readLines(r.path)
	if err != nil {
		return nil, err
	}
	var books []domain.Book
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		b, err := parseBook(line)
		if err != nil {
			logger.Warn("Skipping malformed book record", "file", r.path, "line", i+1, "error", err)
			continue
		}
		books = append(books, b)
	}
	return books, nil
}

func (r *bookRepository) SaveAll(ctx context.Context, books []domain.Book) error {
	lines := make([]string, 0, len(books)+1)
	lines = append(lines, bookHeader)
	for _, b := range books {
		lines = append(lines, formatBook(b))
	}
	logger.StoreCall("SaveBooks", "books", len(books))
	err := writeLines(r.path, lines)
	logger.StoreResult("SaveBooks", err)
	return err
}

func formatBook(b domain.Book) string {
	return fmt.Sprintf("%d,%s,%s,%s,%s,%d,%s", b.ID, b.Title, b.Author, b.ISBN, b.Publisher, b.Year, b.Status)
}

func parseBook(line string) (domain.Book, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 7 {
		return domain.Book{}, fmt.Errorf("expected 7 fields, got %d", len(fields))
	}
	id, err := strconv.ParseInt(fields[0], 10, 32)
	if err != nil {
		return domain.Book{}, fmt.Errorf("invalid book id %q: %w", fields[0], err)
	}
	year, err := strconv.ParseInt(fields[5], 10, 32)
	if err != nil {
		return domain.Book{}, fmt.Errorf("invalid year %q: %w", fields[5], err)
	}
	return domain.Book{
		ID:        int32(id),
		Title:     fields[1],
		Author:    fields[2],
		ISBN:      fields[3],
		Publisher: fields[4],
		Year:      int32(year),
		Status:    domain.BookStatus(fields[6]),
	}, nil
}
