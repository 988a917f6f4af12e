package sale

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/comptoir/internal/sale"
)

type lineResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int64     `json:"unit_price"`
	Subtotal    int64     `json:"subtotal"`
}

type saleResponse struct {
	ID              uuid.UUID      `json:"id"`
	ClientName      string         `json:"client_name,omitempty"`
	SellerID        uuid.UUID      `json:"seller_id"`
	SoldAt          time.Time      `json:"sold_at"`
	Total           int64          `json:"total"`
	AmountCollected int64          `json:"amount_collected"`
	Balance         int64          `json:"balance"`
	Completed       bool           `json:"completed"`
	PaymentStatus   sale.Status    `json:"payment_status"`
	FinalizedAt     *time.Time     `json:"finalized_at,omitempty"`
	Lines           []lineResponse `json:"lines,omitempty"`
}

type paymentResponse struct {
	ID      uuid.UUID        `json:"id"`
	SaleID  uuid.UUID        `json:"sale_id"`
	Amount  int64            `json:"amount"`
	Mode    sale.PaymentMode `json:"mode"`
	PaidAt  time.Time        `json:"paid_at"`
	ActorID uuid.UUID        `json:"actor_id"`
	Note    string           `json:"note,omitempty"`
}

func toLineResponse(l *sale.Line) lineResponse {
	return lineResponse{
		ID:          l.ID,
		ProductID:   l.ProductID,
		ProductName: l.ProductName,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		Subtotal:    l.Subtotal(),
	}
}

func toResponse(s *sale.Sale) saleResponse {
	resp := saleResponse{
		ID:              s.ID,
		ClientName:      s.ClientName,
		SellerID:        s.SellerID,
		SoldAt:          s.SoldAt,
		Total:           s.Total,
		AmountCollected: s.AmountCollected,
		Balance:         s.Balance(),
		Completed:       s.Completed,
		PaymentStatus:   s.PaymentStatus,
		FinalizedAt:     s.FinalizedAt,
	}

	for _, l := range s.Lines {
		resp.Lines = append(resp.Lines, toLineResponse(l))
	}

	return resp
}

func toPaymentResponse(p *sale.Payment) paymentResponse {
	return paymentResponse{
		ID:      p.ID,
		SaleID:  p.SaleID,
		Amount:  p.Amount,
		Mode:    p.Mode,
		PaidAt:  p.PaidAt,
		ActorID: p.ActorID,
		Note:    p.Note,
	}
}
