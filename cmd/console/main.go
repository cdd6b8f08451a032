// Interactive console client: the numbered role menus of the original
// single-user system, driving the service layer directly. Thin glue;
// all business rules live in internal/service and internal/policy.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"library-backend/internal/config"
	"library-backend/internal/domain"
	"library-backend/internal/logger"
	"library-backend/internal/repository/flatfile"
	"library-backend/internal/service"
)

type console struct {
	catalog     service.CatalogService
	directory   service.DirectoryService
	accounts    service.AccountService
	circulation service.CirculationService
	in          *bufio.Scanner
}

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize("error", cfg.Log.Format) // keep the console quiet

	store, err := flatfile.NewStore(cfg.Data.Dir)
	if err != nil {
		log.Fatalf("Failed to initialize data store: %v", err)
	}
	if err := store.EnsureSeedData(context.Background()); err != nil {
		log.Fatalf("Failed to seed default data: %v", err)
	}

	catalogSvc := service.NewCatalogService(store.BookRepository)
	accountMgr := service.NewAccountManager(store.LedgerRepository)
	c := &console{
		catalog:     catalogSvc,
		directory:   service.NewDirectoryService(store.PatronRepository),
		accounts:    accountMgr,
		circulation: service.NewCirculationService(catalogSvc, accountMgr),
		in:          bufio.NewScanner(os.Stdin),
	}
	c.run()
}

func (c *console) run() {
	ctx := context.Background()
	for {
		fmt.Println("\n=== Library System Login ===")
		id, ok := c.promptInt("Enter User ID: ")
		if !ok {
			return
		}
		patron, err := c.directory.Authenticate(ctx, id)
		if err != nil {
			fmt.Println("User not found!")
			continue
		}
		c.menu(ctx, patron)
	}
}

func (c *console) menu(ctx context.Context, patron *domain.Patron) {
	switch patron.Role {
	case domain.RoleStudent:
		c.borrowerMenu(ctx, patron, true)
	case domain.RoleFaculty:
		c.borrowerMenu(ctx, patron, false)
	case domain.RoleLibrarian:
		c.librarianMenu(ctx, patron)
	}
}

func (c *console) borrowerMenu(ctx context.Context, patron *domain.Patron, canPayFines bool) {
	for {
		fmt.Printf("\n=== %s Menu ===\n", patron.Role)
		fmt.Println("1. View Available Books")
		fmt.Println("2. Borrow Book")
		fmt.Println("3. Return Book")
		fmt.Println("4. View Account")
		next := 5
		if canPayFines {
			fmt.Println("5. Pay Fines")
			next = 6
		}
		fmt.Printf("%d. Logout\n", next)

		choice, ok := c.promptInt("Choice: ")
		if !ok {
			return
		}
		switch {
		case choice == 1:
			c.showCatalog(ctx)
		case choice == 2:
			c.borrow(ctx, patron)
		case choice == 3:
			c.returnBook(ctx, patron)
		case choice == 4:
			c.showAccount(ctx, patron)
		case choice == 5 && canPayFines:
			c.payFine(ctx, patron)
		case choice == int32(next):
			return
		default:
			fmt.Println("Invalid choice!")
		}
	}
}

func (c *console) librarianMenu(ctx context.Context, patron *domain.Patron) {
	for {
		fmt.Println("\n=== Librarian Menu ===")
		fmt.Println("1. Add Book")
		fmt.Println("2. Remove Book")
		fmt.Println("3. View All Books")
		fmt.Println("4. Add User")
		fmt.Println("5. Remove User")
		fmt.Println("6. Logout")

		choice, ok := c.promptInt("Choice: ")
		if !ok {
			return
		}
		switch choice {
		case 1:
			c.addBook(ctx, patron)
		case 2:
			if id, ok := c.promptInt("Enter Book ID to remove: "); ok {
				c.report(c.catalog.RemoveBook(ctx, patron, id), "Book removed successfully!")
			}
		case 3:
			c.showCatalog(ctx)
		case 4:
			c.addPatron(ctx, patron)
		case 5:
			if id, ok := c.promptInt("Enter User ID to remove: "); ok {
				c.report(c.directory.RemovePatron(ctx, patron, id), "User removed successfully!")
			}
		case 6:
			return
		default:
			fmt.Println("Invalid choice!")
		}
	}
}

func (c *console) showCatalog(ctx context.Context) {
	books, err := c.catalog.ListBooks(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("\n=== Library Catalog ===")
	for _, b := range books {
		fmt.Printf("ID: %d | Title: %s | Author: %s | ISBN: %s | Status: %s\n",
			b.ID, b.Title, b.Author, b.ISBN, b.Status)
	}
}

func (c *console) showAccount(ctx context.Context, patron *domain.Patron) {
	acct, err := c.accounts.GetAccount(ctx, patron)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("\n=== Account Summary ===")
	fmt.Println("User ID:", acct.PatronID)
	fmt.Println("Current Fines: Rs.", acct.FineBalance)
	fmt.Print("Borrowed Books: ")
	for _, id := range acct.CurrentBooks() {
		fmt.Print(id, " ")
	}
	fmt.Println()
}

func (c *console) borrow(ctx context.Context, patron *domain.Patron) {
	id, ok := c.promptInt("Enter Book ID: ")
	if !ok {
		return
	}
	if _, err := c.circulation.Borrow(ctx, patron, id); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("Book borrowed successfully!")
}

func (c *console) returnBook(ctx context.Context, patron *domain.Patron) {
	id, ok := c.promptInt("Enter Book ID to return: ")
	if !ok {
		return
	}
	c.report(c.circulation.Return(ctx, patron, id), "Book returned successfully!")
}

func (c *console) payFine(ctx context.Context, patron *domain.Patron) {
	amount, ok := c.promptInt("Enter amount to pay: ")
	if !ok {
		return
	}
	remaining, err := c.accounts.PayFine(ctx, patron, amount)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Paid Rs.%d. Remaining balance: Rs.%d\n", amount, remaining)
}

func (c *console) addBook(ctx context.Context, patron *domain.Patron) {
	id, ok := c.promptInt("Enter Book ID: ")
	if !ok {
		return
	}
	book := domain.Book{ID: id}
	book.Title, _ = c.promptLine("Title: ")
	book.Author, _ = c.promptLine("Author: ")
	book.ISBN, _ = c.promptLine("ISBN: ")
	book.Publisher, _ = c.promptLine("Publisher: ")
	book.Year, _ = c.promptInt("Year: ")
	c.report(c.catalog.AddBook(ctx, patron, book), "Book added successfully!")
}

func (c *console) addPatron(ctx context.Context, patron *domain.Patron) {
	id, ok := c.promptInt("Enter new user ID: ")
	if !ok {
		return
	}
	name, _ := c.promptLine("Enter name: ")
	roleStr, _ := c.promptLine("Enter role (Student/Faculty/Librarian): ")
	roleStr = strings.ToLower(strings.TrimSpace(roleStr))
	if roleStr != "" {
		roleStr = strings.ToUpper(roleStr[:1]) + roleStr[1:]
	}
	role, ok := domain.ParseRole(roleStr)
	if !ok {
		fmt.Println("Invalid role!")
		return
	}
	c.report(c.directory.AddPatron(ctx, patron, domain.Patron{ID: id, Name: name, Role: role}), "User added successfully!")
}

func (c *console) report(err error, success string) {
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(success)
}

func (c *console) promptLine(prompt string) (string, bool) {
	fmt.Print(prompt)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *console) promptInt(prompt string) (int32, bool) {
	for {
		line, ok := c.promptLine(prompt)
		if !ok {
			return 0, false
		}
		n, err := strconv.ParseInt(line, 10, 32)
		if err != nil {
			fmt.Println("Invalid number!")
			continue
		}
		return int32(n), true
	}
}
