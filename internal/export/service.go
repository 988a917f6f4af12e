package export

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/comptoir/internal/expense"
)

// ExpenseLister is the read side of the expense ledger.
type ExpenseLister interface {
	List(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error)
}

// Item links an exported expense to its downloaded receipt, if any.
type Item struct {
	Expense  *expense.Expense
	FilePath string
}

// Service gathers expense receipts for the accountant.
type Service struct {
	expenses ExpenseLister
	client   *resty.Client
}

// NewService builds an exporter. token is sent as "Authorization: Token <token>"
// to the receipt storage when set.
func NewService(expenses ExpenseLister, token string) *Service {
	client := resty.New().SetTimeout(30 * time.Second)
	if token != "" {
		client.SetHeader("Authorization", "Token "+token)
	}

	return &Service{
		expenses: expenses,
		client:   client,
	}
}

// Export downloads the receipts of the expenses matching filter into outputDir.
// Expenses without a receipt are returned with an empty FilePath.
func (s *Service) Export(ctx context.Context, filter expense.ListFilter, outputDir string) ([]Item, error) {
	expenses, err := s.expenses.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	items := make([]Item, 0, len(expenses))
	seen := make(map[string]int)

	for _, e := range expenses {
		item := Item{Expense: e}

		if e.ReceiptURL != "" {
			path, err := s.downloadReceipt(ctx, e, outputDir, seen)
			if err != nil {
				return nil, fmt.Errorf("downloading receipt for expense %s: %w", e.ID, err)
			}

			item.FilePath = path
		}

		items = append(items, item)
	}

	slog.InfoContext(ctx, "receipts exported", "expenses", len(items), "dir", outputDir)

	return items, nil
}

func (s *Service) downloadReceipt(ctx context.Context, e *expense.Expense, dir string, seen map[string]int) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(e.ReceiptURL)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}

	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for url %s", resp.StatusCode(), e.ReceiptURL)
	}

	filename := uniqueName(receiptFilename(resp.Header(), e), seen)
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return path, nil
}

// receiptFilename prefers the name the server suggests and otherwise builds
// one from the expense date and description.
func receiptFilename(h http.Header, e *expense.Expense) string {
	if cd := h.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if filename, ok := params["filename"]; ok && filename != "" {
				return strings.ReplaceAll(filepath.Base(filename), " ", "_")
			}
		}
	}

	ext := ".pdf"

	if ct := h.Get("Content-Type"); ct != "" {
		if exts, _ := mime.ExtensionsByType(ct); len(exts) > 0 {
			ext = exts[0]
		}
	}

	safeDesc := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, e.Description)

	return fmt.Sprintf("%s_%s_%s%s", e.SpentOn.Format("20060102"), e.Entity, safeDesc, ext)
}

// uniqueName suffixes repeated names so two receipts never overwrite each other.
func uniqueName(name string, seen map[string]int) string {
	n := seen[name]
	seen[name] = n + 1

	if n == 0 {
		return name
	}

	ext := filepath.Ext(name)

	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), n+1, ext)
}

// Summary lists exported expenses one per line, for pasting into a mail to
// the accountant.
func Summary(items []Item) string {
	var sb strings.Builder

	var total int64

	for _, item := range items {
		e := item.Expense

		owner := string(e.Entity)
		if e.Sector != "" {
			owner += "/" + e.Sector
		}

		receipt := "no receipt"
		if item.FilePath != "" {
			receipt = filepath.Base(item.FilePath)
		}

		fmt.Fprintf(&sb, "* %s | %s | %s | %s | %s\n",
			e.SpentOn.Format("2006-01-02"), owner, e.Description, formatCents(e.Amount), receipt)

		total += e.Amount
	}

	fmt.Fprintf(&sb, "Total: %s\n", formatCents(total))

	return sb.String()
}

// Archive writes the downloaded receipts and the summary into a zip.
func Archive(w io.Writer, items []Item) error {
	zw := zip.NewWriter(w)

	for _, item := range items {
		if item.FilePath == "" {
			continue
		}

		if err := addFile(zw, item.FilePath); err != nil {
			return err
		}
	}

	sw, err := zw.Create("summary.txt")
	if err != nil {
		return fmt.Errorf("adding summary: %w", err)
	}

	if _, err := io.WriteString(sw, Summary(items)); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}

	return nil
}

func addFile(zw *zip.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	w, err := zw.Create(filepath.Base(path))
	if err != nil {
		return fmt.Errorf("adding %s: %w", path, err)
	}

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copying %s: %w", path, err)
	}

	return nil
}

func formatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
