// Package receipts writes purchase receipts as markdown notes with YAML
// frontmatter, one file per committed purchase.
package receipts

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/booksadda/storefront/internal/books"
)

// Frontmatter is the YAML header of a receipt note.
type Frontmatter struct {
	Type          string  `yaml:"type"`
	UserID        string  `yaml:"userId"`
	BookTitle     string  `yaml:"bookTitle"`
	Author        string  `yaml:"author"`
	Price         float64 `yaml:"price"`
	Quantity      int     `yaml:"quantity"`
	TotalPrice    float64 `yaml:"totalPrice"`
	PurchasedDate string  `yaml:"purchasedDate"`
	Address       string  `yaml:"address"`
}

// Receipt is a parsed receipt note.
type Receipt struct {
	Frontmatter Frontmatter
	Body        string
}

// Write renders record as a markdown receipt under outputDir and returns
// the path of the written file.
func Write(record books.PurchaseRecord, outputDir string) (string, error) {
	fm := Frontmatter{
		Type:          "purchase-receipt",
		UserID:        record.UserID,
		BookTitle:     record.BookTitle,
		Author:        record.Author,
		Price:         record.Price,
		Quantity:      record.Quantity,
		TotalPrice:    record.TotalPrice,
		PurchasedDate: record.PurchasedDate,
		Address:       record.Address.Label(),
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("failed to marshal receipt frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n\n")
	buf.WriteString(fmt.Sprintf("# %s\n\n", record.BookTitle))
	buf.WriteString(fmt.Sprintf("Purchased %d %s of *%s* by %s for a total of %.2f.\n",
		record.Quantity, pluralCopies(record.Quantity), record.BookTitle, record.Author, record.TotalPrice))
	buf.WriteString(fmt.Sprintf("\nDelivery to: %s\n", record.Address.Label()))

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create receipts directory: %w", err)
	}

	path := filepath.Join(outputDir, Filename(record))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write receipt: %w", err)
	}
	return path, nil
}

// Filename builds a stable receipt filename from the record's title and
// purchase time.
func Filename(record books.PurchaseRecord) string {
	stamp := record.PurchasedDate
	if t, err := time.Parse(time.RFC3339, record.PurchasedDate); err == nil {
		stamp = t.UTC().Format("2006-01-02T150405")
	}
	return fmt.Sprintf("%s - %s.md", sanitizeFilename(record.BookTitle), stamp)
}

// Parse reads a receipt note back from its markdown form.
func Parse(content []byte) (*Receipt, error) {
	trimmed := bytes.TrimSpace(content)
	if !bytes.HasPrefix(trimmed, []byte("---")) {
		return nil, fmt.Errorf("invalid receipt: missing opening frontmatter delimiter")
	}

	parts := bytes.SplitN(trimmed, []byte("---"), 3)
	if len(parts) < 3 {
		return nil, fmt.Errorf("invalid receipt: missing closing frontmatter delimiter")
	}

	var fm Frontmatter
	if err := yaml.Unmarshal(parts[1], &fm); err != nil {
		return nil, fmt.Errorf("failed to parse receipt frontmatter: %w", err)
	}

	return &Receipt{
		Frontmatter: fm,
		Body:        strings.TrimSpace(string(parts[2])),
	}, nil
}

func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, ":", " -")
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	return name
}

func pluralCopies(n int) string {
	if n == 1 {
		return "copy"
	}
	return "copies"
}
