package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/goldpawn/pawn-engine/internal/domain"
	"github.com/goldpawn/pawn-engine/internal/service"
	customError "github.com/goldpawn/pawn-engine/pkg/errors"
	"github.com/goldpawn/pawn-engine/pkg/response"
	"github.com/goldpawn/pawn-engine/pkg/utils"
)

type PawnHandler struct {
	service   *service.PawnService
	validator *validator.Validate
}

func NewPawnHandler(service *service.PawnService) *PawnHandler {
	return &PawnHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateScheme registers a new interest scheme
func (h *PawnHandler) CreateScheme(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateSchemeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	sch, err := h.service.CreateScheme(r.Context(), &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, &domain.SchemeResponse{Scheme: sch})
}

// GetScheme returns a scheme by ID
func (h *PawnHandler) GetScheme(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["schemeId"])
	if err != nil {
		response.BadRequest(w, "Invalid scheme ID", err)
		return
	}

	sch, err := h.service.GetScheme(r.Context(), id)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, &domain.SchemeResponse{Scheme: sch})
}

// CreateRate registers a jewel-type rate (or the universal fallback)
func (h *PawnHandler) CreateRate(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateRateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	rate, err := h.service.CreateRate(r.Context(), &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, &domain.RateResponse{Rate: rate})
}

// CreateLoan creates a loan with a rate snapshot resolved at creation time
func (h *PawnHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	loan, err := h.service.CreateLoan(r.Context(), &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, &domain.CreateLoanResponse{Loan: loan})
}

// PreviewClosure computes what a closure would look like without persisting it
func (h *PawnHandler) PreviewClosure(w http.ResponseWriter, r *http.Request) {
	loanNo := mux.Vars(r)["loanNo"]

	asOf, err := asOfFromQuery(r.URL.Query().Get("as_of"))
	if err != nil {
		response.BadRequest(w, "Invalid as_of date", err)
		return
	}

	interestReduction, err := decimalFromQuery(r.URL.Query().Get("interest_reduction"))
	if err != nil {
		response.BadRequest(w, "Invalid interest_reduction", err)
		return
	}

	additionalReduction, err := decimalFromQuery(r.URL.Query().Get("additional_reduction"))
	if err != nil {
		response.BadRequest(w, "Invalid additional_reduction", err)
		return
	}

	result, err := h.service.PreviewClosure(r.Context(), loanNo, asOf, interestReduction, additionalReduction)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, &domain.ClosureResponse{LoanNo: loanNo, Closure: result})
}

// CloseLoan finalizes a closure and persists its immutable snapshot
func (h *PawnHandler) CloseLoan(w http.ResponseWriter, r *http.Request) {
	loanNo := mux.Vars(r)["loanNo"]

	var request domain.CloseLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	asOf, err := asOfFromQuery(request.AsOfDate)
	if err != nil {
		response.BadRequest(w, "Invalid as_of_date", err)
		return
	}

	result, err := h.service.CloseLoan(r.Context(), loanNo, asOf, request.InterestReduction, request.AdditionalReduction)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, &domain.ClosureResponse{LoanNo: loanNo, Closure: result})
}

func asOfFromQuery(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC().Truncate(24 * time.Hour), nil
	}
	return utils.ParseDate(raw)
}

func decimalFromQuery(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return utils.DecimalFromString(raw)
}

// writeBusinessError maps error codes onto HTTP statuses
func writeBusinessError(w http.ResponseWriter, err error) {
	var be *customError.BusinessError
	if !errors.As(err, &be) {
		response.InternalServerError(w, "Unexpected error", err)
		return
	}

	switch be.Code {
	case customError.ErrCodeLoanNotFound, customError.ErrCodeSchemeNotFound:
		response.NotFound(w, be.Message)
	case customError.ErrCodeLoanAlreadyExists, customError.ErrCodeLoanAlreadyClosed:
		response.Error(w, http.StatusConflict, be.Message, be.Err)
	case customError.ErrCodeInvalidSchemeConfig,
		customError.ErrCodeInvalidSpan,
		customError.ErrCodeInvalidAdjustment,
		customError.ErrCodeNoApplicableRate,
		customError.ErrCodeClosureError:
		response.BadRequest(w, be.Message, be.Err)
	default:
		response.InternalServerError(w, be.Message, be.Err)
	}
}
