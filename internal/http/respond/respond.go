// Package respond holds the JSON plumbing shared by the API handlers: body
// decoding with validation, error to status mapping and query parsing.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/comptoir/internal/auth"
	"github.com/MrJamesThe3rd/comptoir/internal/calendar"
	"github.com/MrJamesThe3rd/comptoir/internal/catalog"
	"github.com/MrJamesThe3rd/comptoir/internal/expense"
	"github.com/MrJamesThe3rd/comptoir/internal/importer/delivery"
	"github.com/MrJamesThe3rd/comptoir/internal/sale"
	"github.com/MrJamesThe3rd/comptoir/internal/salon"
	"github.com/MrJamesThe3rd/comptoir/internal/stock"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names rather than Go ones.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// ErrBadRequest wraps malformed bodies and query parameters.
var ErrBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
	Detail any               `json:"detail,omitempty"`
}

type insufficientStockDetail struct {
	ProductID uuid.UUID `json:"product_id"`
	Product   string    `json:"product"`
	Available int       `json:"available"`
	Requested int       `json:"requested"`
}

type allowanceDetail struct {
	Entity    expense.Entity `json:"entity"`
	Sector    string         `json:"sector,omitempty"`
	Day       string         `json:"day"`
	Revenue   int64          `json:"revenue"`
	Budget    int64          `json:"budget"`
	Spent     int64          `json:"spent"`
	Remaining int64          `json:"remaining"`
	Requested int64          `json:"requested"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Decode reads a JSON body into v and runs its validate tags.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return badRequest("invalid body: %v", err)
	}

	return validate.Struct(v)
}

// Error maps err to a status code and writes it as JSON.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status, body := classify(err)

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		body = errorResponse{Error: "internal error"}
	}

	JSON(w, status, body)
}

func classify(err error) (int, errorResponse) {
	body := errorResponse{Error: err.Error()}

	var (
		validationErrs validator.ValidationErrors
		stockErr       *stock.InsufficientStockError
		allowanceErr   *expense.AllowanceError
		rowErr         *delivery.RowError
	)

	switch {
	case errors.As(err, &validationErrs):
		body.Error = "validation failed"
		body.Fields = make(map[string]string, len(validationErrs))

		for _, fe := range validationErrs {
			body.Fields[fe.Field()] = fe.Tag()
		}

		return http.StatusUnprocessableEntity, body

	case errors.As(err, &stockErr):
		body.Detail = insufficientStockDetail{
			ProductID: stockErr.ProductID,
			Product:   stockErr.ProductName,
			Available: stockErr.Available,
			Requested: stockErr.Requested,
		}

		return http.StatusConflict, body

	case errors.As(err, &allowanceErr):
		a := allowanceErr.Allowance
		body.Detail = allowanceDetail{
			Entity:    a.Entity,
			Sector:    a.Sector,
			Day:       a.Day.Format(time.DateOnly),
			Revenue:   a.Revenue,
			Budget:    a.Budget,
			Spent:     a.Spent,
			Remaining: a.Remaining(),
			Requested: allowanceErr.Requested,
		}

		return http.StatusUnprocessableEntity, body

	case errors.As(err, &rowErr), errors.Is(err, delivery.ErrNoHeader):
		return http.StatusUnprocessableEntity, body

	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, body

	case isAny(err, catalog.ErrNotFound, catalog.ErrCategoryNotFound, sale.ErrNotFound,
		sale.ErrProductNotFound, salon.ErrNotFound, stock.ErrNotFound):
		return http.StatusNotFound, body

	case isAny(err, catalog.ErrReferenced, catalog.ErrDuplicateName, salon.ErrReferenced,
		salon.ErrDuplicateSector, sale.ErrSaleFinalized):
		return http.StatusConflict, body

	case isAny(err, catalog.ErrInvalidProduct, sale.ErrInvalidLine, sale.ErrInvalidAmount,
		sale.ErrInvalidPaymentMode, salon.ErrInvalid, stock.ErrInvalidQuantity,
		stock.ErrInvalidMovementType, expense.ErrInvalidAmount, expense.ErrInvalidEntity,
		expense.ErrSectorRequired):
		return http.StatusUnprocessableEntity, body
	}

	return http.StatusInternalServerError, body
}

func isAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}

	return false
}

// ID parses a UUID path parameter.
func ID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, badRequest("invalid %s", name)
	}

	return id, nil
}

// QueryID parses an optional UUID query parameter.
func QueryID(r *http.Request, key string) (*uuid.UUID, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return nil, badRequest("invalid %s", key)
	}

	return &id, nil
}

// QueryDate parses an optional YYYY-MM-DD query parameter.
func QueryDate(r *http.Request, key string) (*time.Time, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, badRequest("invalid %s, expected YYYY-MM-DD", key)
	}

	return &t, nil
}

// QueryBool parses an optional boolean query parameter.
func QueryBool(r *http.Request, key string) (*bool, error) {
	switch r.URL.Query().Get(key) {
	case "":
		return nil, nil
	case "true", "1":
		return new(true), nil
	case "false", "0":
		return new(false), nil
	}

	return nil, badRequest("invalid %s, expected true or false", key)
}

// QueryMonth parses the year and month query parameters.
func QueryMonth(r *http.Request) (int, time.Month, error) {
	t, err := time.Parse("2006-01", r.URL.Query().Get("month"))
	if err != nil {
		return 0, 0, badRequest("invalid month, expected YYYY-MM")
	}

	return t.Year(), t.Month(), nil
}

// Actor is the authenticated user behind the request.
func Actor(r *http.Request) uuid.UUID {
	actor, _ := auth.ActorFromContext(r.Context())
	return actor.ID
}

// QueryPeriod reads the inclusive from and to dates of a listing and turns
// them into the half-open UTC interval of those local days.
func QueryPeriod(r *http.Request, cal *calendar.Calendar) (*time.Time, *time.Time, error) {
	from, to, err := queryDates(r)
	if err != nil {
		return nil, nil, err
	}

	if from != nil {
		start, _ := cal.DayBounds(*from)
		from = &start
	}

	if to != nil {
		_, end := cal.DayBounds(*to)
		to = &end
	}

	return from, to, nil
}

// QueryDates reads the inclusive from and to dates for filters on date-only
// columns, returning to as the exclusive following day.
func QueryDates(r *http.Request) (*time.Time, *time.Time, error) {
	from, to, err := queryDates(r)
	if err != nil {
		return nil, nil, err
	}

	if to != nil {
		next := calendar.Date(to.Year(), to.Month(), to.Day()+1)
		to = &next
	}

	return from, to, nil
}

func queryDates(r *http.Request) (*time.Time, *time.Time, error) {
	from, err := QueryDate(r, "from")
	if err != nil {
		return nil, nil, err
	}

	to, err := QueryDate(r, "to")
	if err != nil {
		return nil, nil, err
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, badRequest("to is before from")
	}

	return from, to, nil
}
