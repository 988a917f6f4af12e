package export_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/comptoir/internal/expense"
	"github.com/MrJamesThe3rd/comptoir/internal/export"
)

type listerFunc func(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error)

func (f listerFunc) List(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error) {
	return f(ctx, filter)
}

func receiptServer(t *testing.T) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		switch r.URL.Path {
		case "/named":
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", `attachment; filename="facture 12.pdf"`)
			_, _ = w.Write([]byte("named pdf"))
		case "/anonymous":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("png bytes"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(ts.Close)

	return ts
}

func TestService_Export(t *testing.T) {
	ts := receiptServer(t)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	named := &expense.Expense{ID: uuid.New(), Entity: expense.EntityBoutique, Description: "Sacs", Amount: 1250, SpentOn: day, ReceiptURL: ts.URL + "/named"}
	again := &expense.Expense{ID: uuid.New(), Entity: expense.EntityBoutique, Description: "Sacs", Amount: 800, SpentOn: day, ReceiptURL: ts.URL + "/named"}
	anon := &expense.Expense{ID: uuid.New(), Entity: expense.EntitySalon, Sector: "women", Description: "Shampoing pro", Amount: 3000, SpentOn: day, ReceiptURL: ts.URL + "/anonymous"}
	bare := &expense.Expense{ID: uuid.New(), Entity: expense.EntitySalon, Sector: "men", Description: "Taxi", Amount: 500, SpentOn: day}

	lister := listerFunc(func(context.Context, expense.ListFilter) ([]*expense.Expense, error) {
		return []*expense.Expense{named, again, anon, bare}, nil
	})

	dir := t.TempDir()

	items, err := export.NewService(lister, "secret").Export(context.Background(), expense.ListFilter{}, dir)
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, "facture_12.pdf", filepath.Base(items[0].FilePath))
	assert.Equal(t, "facture_12_2.pdf", filepath.Base(items[1].FilePath))
	assert.Equal(t, "20260302_salon_Shampoing_pro.png", filepath.Base(items[2].FilePath))
	assert.Empty(t, items[3].FilePath)

	content, err := os.ReadFile(items[0].FilePath)
	require.NoError(t, err)
	assert.Equal(t, "named pdf", string(content))
}

func TestService_Export_Failures(t *testing.T) {
	ts := receiptServer(t)

	t.Run("missing receipt", func(t *testing.T) {
		lister := listerFunc(func(context.Context, expense.ListFilter) ([]*expense.Expense, error) {
			return []*expense.Expense{{ID: uuid.New(), ReceiptURL: ts.URL + "/gone"}}, nil
		})

		_, err := export.NewService(lister, "secret").Export(context.Background(), expense.ListFilter{}, t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code 404")
	})

	t.Run("wrong token", func(t *testing.T) {
		lister := listerFunc(func(context.Context, expense.ListFilter) ([]*expense.Expense, error) {
			return []*expense.Expense{{ID: uuid.New(), ReceiptURL: ts.URL + "/named"}}, nil
		})

		_, err := export.NewService(lister, "").Export(context.Background(), expense.ListFilter{}, t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("listing fails", func(t *testing.T) {
		boom := errors.New("boom")
		lister := listerFunc(func(context.Context, expense.ListFilter) ([]*expense.Expense, error) {
			return nil, boom
		})

		_, err := export.NewService(lister, "secret").Export(context.Background(), expense.ListFilter{}, t.TempDir())
		assert.ErrorIs(t, err, boom)
	})
}

func TestSummary(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	items := []export.Item{
		{
			Expense:  &expense.Expense{Entity: expense.EntitySalon, Sector: "women", Description: "Shampoing", Amount: 1250, SpentOn: day},
			FilePath: "/tmp/receipts/shampoing.pdf",
		},
		{
			Expense: &expense.Expense{Entity: expense.EntityBoutique, Description: "Cintres", Amount: 500, SpentOn: day},
		},
	}

	body := export.Summary(items)

	assert.Contains(t, body, "* 2026-03-02 | salon/women | Shampoing | 12.50 | shampoing.pdf\n")
	assert.Contains(t, body, "* 2026-03-02 | boutique | Cintres | 5.00 | no receipt\n")
	assert.Contains(t, body, "Total: 17.50\n")
}

func TestArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ticket.pdf")
	require.NoError(t, os.WriteFile(path, []byte("pdf"), 0o600))

	items := []export.Item{
		{Expense: &expense.Expense{Entity: expense.EntityBoutique, Description: "Cintres", Amount: 500}, FilePath: path},
		{Expense: &expense.Expense{Entity: expense.EntityBoutique, Description: "Taxi", Amount: 300}},
	}

	var buf bytes.Buffer
	require.NoError(t, export.Archive(&buf, items))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "ticket.pdf", zr.File[0].Name)
	assert.Equal(t, "summary.txt", zr.File[1].Name)

	rc, err := zr.File[1].Open()
	require.NoError(t, err)
	defer rc.Close()

	summary, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Contains(t, string(summary), "Total: 8.00")
}
