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

const patronHeader = "userid,name,role"

type patronRepository struct {
	path string
}

func NewPatronRepository(path string) repository.PatronRepository {
	return &patronRepository{path: path}
}

func (r *patronRepository) LoadAll(ctx context.Context) ([]domain.Patron, error) {
	lines, err := readLines(r.path)
	if err != nil {
		return nil, err
	}
	var patrons []domain.Patron
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		p, err := parsePatron(line)
		if err != nil {
			logger.Warn("Skipping malformed patron record", "file", r.path, "line", i+1, "error", err)
			continue
		}
		patrons = append(patrons, p)
	}
	return patrons, nil
}

func (r *patronRepository) SaveAll(ctx context.Context, patrons []domain.Patron) error {
	lines := make([]string, 0, len(patrons)+1)
	lines = append(lines, patronHeader)
	for _, p := range patrons {
		lines = append(lines, fmt.Sprintf("%d,%s,%s", p.ID, p.Name, p.Role))
	}
	logger.StoreCall("SavePatrons", "patrons", len(patrons))
	err := writeLines(r.path, lines)
	logger.StoreResult("SavePatrons", err)
	return err
}

func parsePatron(line string) (domain.Patron, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 3 {
		return domain.Patron{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}
	id, err := strconv.ParseInt(fields[0], 10, 32)
	if err != nil {
		return domain.Patron{}, fmt.Errorf("invalid patron id %q: %w", fields[0], err)
	}
	role, ok := domain.ParseRole(fields[2])
	if !ok {
		return domain.Patron{}, fmt.Errorf("unknown role %q", fields[2])
	}
	return domain.Patron{ID: int32(id), Name: fields[1], Role: role}, nil
}
