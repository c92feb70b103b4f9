package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Book is a single catalog entry
type Book struct {
	ID     int64    `yaml:"id" json:"id"`
	Title  string   `yaml:"title" json:"title"`
	Author string   `yaml:"author" json:"author"`
	Year   int      `yaml:"year,omitempty" json:"year,omitempty"`
	Genres []string `yaml:"genres,omitempty" json:"genres,omitempty"`
}

// Interaction records that a user read a book
type Interaction struct {
	UserID int64  `yaml:"user" json:"user"`
	BookID int64  `yaml:"book" json:"book"`
	Date   string `yaml:"date,omitempty" json:"date,omitempty"`
}

// Dataset is the on-disk shape of a catalog file
type Dataset struct {
	Books        []Book        `yaml:"books"`
	Interactions []Interaction `yaml:"interactions"`
}

// Catalog is an immutable, indexed view over books and interactions.
type Catalog struct {
	books   []Book
	byID    map[int64]int
	history map[int64][]int64
	readers map[int64]map[int64]struct{}
	users   []int64
}

//go:embed sample.yaml
var sampleData []byte

// New builds a catalog, rejecting duplicate books and dangling interactions
func New(books []Book, interactions []Interaction) (*Catalog, error) {
	c := &Catalog{
		books:   make([]Book, 0, len(books)),
		byID:    make(map[int64]int, len(books)),
		history: make(map[int64][]int64),
		readers: make(map[int64]map[int64]struct{}),
	}

	for _, b := range books {
		if b.ID <= 0 {
			return nil, fmt.Errorf("book %q: id must be positive, got %d", b.Title, b.ID)
		}
		if _, dup := c.byID[b.ID]; dup {
			return nil, fmt.Errorf("duplicate book id %d", b.ID)
		}
		c.byID[b.ID] = len(c.books)
		c.books = append(c.books, b)
	}
	sort.Slice(c.books, func(i, j int) bool { return c.books[i].ID < c.books[j].ID })
	for i, b := range c.books {
		c.byID[b.ID] = i
	}

	for i, in := range interactions {
		if in.UserID <= 0 {
			return nil, fmt.Errorf("interaction %d: user id must be positive, got %d", i, in.UserID)
		}
		if _, ok := c.byID[in.BookID]; !ok {
			return nil, fmt.Errorf("interaction %d: unknown book %d", i, in.BookID)
		}
		readers, ok := c.readers[in.BookID]
		if !ok {
			readers = make(map[int64]struct{})
			c.readers[in.BookID] = readers
		}
		if _, seen := readers[in.UserID]; seen {
			continue
		}
		readers[in.UserID] = struct{}{}
		c.history[in.UserID] = append(c.history[in.UserID], in.BookID)
	}

	c.users = make([]int64, 0, len(c.history))
	for u := range c.history {
		c.users = append(c.users, u)
	}
	sort.Slice(c.users, func(i, j int) bool { return c.users[i] < c.users[j] })

	return c, nil
}

// Parse decodes a YAML dataset
func Parse(data []byte) (*Catalog, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(ds.Books, ds.Interactions)
}

// Load reads a YAML dataset from path
func Load(path string) (*Catalog, error) {
	// #nosec G304 - path comes from validated configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Sample returns the dataset bundled with the binary
func Sample() *Catalog {
	c, err := Parse(sampleData)
	if err != nil {
		panic(fmt.Sprintf("bundled sample catalog is invalid: %v", err))
	}
	return c
}

// SampleYAML returns the raw bundled dataset
func SampleYAML() []byte {
	out := make([]byte, len(sampleData))
	copy(out, sampleData)
	return out
}

// Book looks up a book by id
func (c *Catalog) Book(id int64) (Book, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Book{}, false
	}
	return c.books[i], true
}

// Books returns all books ordered by id
func (c *Catalog) Books() []Book {
	out := make([]Book, len(c.books))
	copy(out, c.books)
	return out
}

// Users returns every user with at least one interaction, ascending
func (c *Catalog) Users() []int64 {
	out := make([]int64, len(c.users))
	copy(out, c.users)
	return out
}

// HasUser reports whether the user has any interactions
func (c *Catalog) HasUser(user int64) bool {
	_, ok := c.history[user]
	return ok
}

// History returns the books a user has read, in first-read order
func (c *Catalog) History(user int64) []int64 {
	h := c.history[user]
	out := make([]int64, len(h))
	copy(out, h)
	return out
}

// Readers returns the number of distinct users who read the book
func (c *Catalog) Readers(book int64) int {
	return len(c.readers[book])
}

// ReaderSet exposes the set of users who read a book. Callers must not mutate it.
func (c *Catalog) ReaderSet(book int64) map[int64]struct{} {
	return c.readers[book]
}

// Resolve maps ids to books, skipping unknown ids
func (c *Catalog) Resolve(ids []int64) []Book {
	out := make([]Book, 0, len(ids))
	for _, id := range ids {
		if b, ok := c.Book(id); ok {
			out = append(out, b)
		}
	}
	return out
}
