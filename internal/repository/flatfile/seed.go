package flatfile

import (
	"context"

	"library-backend/internal/domain"
	"library-backend/internal/logger"
)

var defaultBooks = []domain.Book{
	{ID: 101, Title: "Clean Code", Author: "Robert Martin", ISBN: "978-0132350884", Publisher: "Prentice Hall", Year: 2008, Status: domain.BookStatusAvailable},
	{ID: 102, Title: "Design Patterns", Author: "Gamma et al.", ISBN: "978-0201633610", Publisher: "Addison-Wesley", Year: 1994, Status: domain.BookStatusAvailable},
	{ID: 103, Title: "The C++ Programming Language", Author: "Bjarne Stroustrup", ISBN: "978-0321563842", Publisher: "Addison-Wesley", Year: 2013, Status: domain.BookStatusAvailable},
	{ID: 104, Title: "Effective Modern C++", Author: "Scott Meyers", ISBN: "978-1491903995", Publisher: "O'Reilly", Year: 2014, Status: domain.BookStatusAvailable},
	{ID: 105, Title: "Refactoring", Author: "Martin Fowler", ISBN: "978-0134757599", Publisher: "Addison-Wesley", Year: 2018, Status: domain.BookStatusAvailable},
	{ID: 106, Title: "Code Complete", Author: "Steve McConnell", ISBN: "978-0735619678", Publisher: "Microsoft Press", Year: 2004, Status: domain.BookStatusAvailable},
	{ID: 107, Title: "The Pragmatic Programmer", Author: "Andrew Hunt", ISBN: "978-0201616224", Publisher: "Addison-Wesley", Year: 1999, Status: domain.BookStatusAvailable},
	{ID: 108, Title: "Introduction to Algorithms", Author: "Thomas Cormen", ISBN: "978-0262033848", Publisher: "MIT Press", Year: 2009, Status: domain.BookStatusAvailable},
	{ID: 109, Title: "Structure and Interpretation of Computer Programs", Author: "Gerald Sussman", ISBN: "978-0262510875", Publisher: "MIT Press", Year: 1996, Status: domain.BookStatusAvailable},
	{ID: 110, Title: "Artificial Intelligence: A Modern Approach", Author: "Stuart Russell", ISBN: "978-0136042594", Publisher: "Prentice Hall", Year: 2010, Status: domain.BookStatusAvailable},
}

var defaultPatrons = []domain.Patron{
	{ID: 1001, Name: "John Doe", Role: domain.RoleStudent},
	{ID: 1002, Name: "Jane Smith", Role: domain.RoleStudent},
	{ID: 1003, Name: "Alice Johnson", Role: domain.RoleStudent},
	{ID: 1004, Name: "Bob Wilson", Role: domain.RoleStudent},
	{ID: 1005, Name: "Charlie Brown", Role: domain.RoleStudent},
	{ID: 2001, Name: "Dr. Smith", Role: domain.RoleFaculty},
	{ID: 2002, Name: "Dr. Emily Davis", Role: domain.RoleFaculty},
	{ID: 2003, Name: "Dr. Michael Lee", Role: domain.RoleFaculty},
	{ID: 3001, Name: "Librarian Admin", Role: domain.RoleLibrarian},
}

// EnsureSeedData bootstraps an empty deployment: an absent or empty book
// store gets the default catalog, an absent patron store gets the
// default directory.
func (s *Store) EnsureSeedData(ctx context.Context) error {
	books, err := s.BookRepository.LoadAll(ctx)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		logger.Info("Seeding default catalog", "books", len(defaultBooks))
		if err := s.BookRepository.SaveAll(ctx, defaultBooks); err != nil {
			return err
		}
	}

	patrons, err := s.PatronRepository.LoadAll(ctx)
	if err != nil {
		return err
	}
	if len(patrons) == 0 {
		logger.Info("Seeding default patron directory", "patrons", len(defaultPatrons))
		if err := s.PatronRepository.SaveAll(ctx, defaultPatrons); err != nil {
			return err
		}
	}
	return nil
}
