package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/comptoir/internal/catalog"
	"github.com/MrJamesThe3rd/comptoir/internal/importer/delivery"
)

//go:generate mockgen -source=service.go -destination=receiver_mock.go -package=importer

// Receiver books delivered goods into the catalog.
type Receiver interface {
	Receive(ctx context.Context, params catalog.ReceiveParams) (*catalog.Product, bool, error)
}

// Parser turns a supplier sheet into delivery lines.
type Parser interface {
	Parse(r io.Reader) ([]delivery.Line, error)
}

type Service struct {
	parser   Parser
	receiver Receiver
}

func NewService(receiver Receiver) *Service {
	return &Service{
		parser:   delivery.NewParser(),
		receiver: receiver,
	}
}

// WithParser swaps the sheet parser. Used by tests.
func (s *Service) WithParser(p Parser) *Service {
	s.parser = p
	return s
}

type Params struct {
	Actor uuid.UUID
	// Reference is the supplier delivery note number, kept on each movement.
	Reference string
}

type Booked struct {
	Row       int
	ProductID uuid.UUID
	Name      string
	Quantity  int
	OnHand    int
	Created   bool
}

type Result struct {
	Lines   []Booked
	Units   int
	Created int
}

// Import parses the whole sheet before booking anything, so a malformed row
// leaves stock untouched. Each line is then received in its own transaction;
// when one fails the lines already booked are returned with the error.
func (s *Service) Import(ctx context.Context, r io.Reader, params Params) (*Result, error) {
	lines, err := s.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse delivery: %w", err)
	}

	reason := "delivery"
	if params.Reference != "" {
		reason = "delivery " + params.Reference
	}

	res := &Result{}

	for _, line := range lines {
		p, created, err := s.receiver.Receive(ctx, catalog.ReceiveParams{
			Name:      line.Name,
			CostPrice: line.CostPrice,
			SalePrice: line.SalePrice,
			Quantity:  line.Quantity,
			Actor:     params.Actor,
			Reason:    reason,
		})
		if err != nil {
			return res, fmt.Errorf("row %d (%s): %w", line.Row, line.Name, err)
		}

		res.Lines = append(res.Lines, Booked{
			Row:       line.Row,
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  line.Quantity,
			OnHand:    p.OnHand,
			Created:   created,
		})
		res.Units += line.Quantity

		if created {
			res.Created++
		}
	}

	slog.InfoContext(ctx, "delivery imported",
		"lines", len(res.Lines), "units", res.Units, "created", res.Created, "reference", params.Reference)

	return res, nil
}
