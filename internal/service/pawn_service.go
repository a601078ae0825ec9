package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/goldpawn/pawn-engine/internal/closure"
	"github.com/goldpawn/pawn-engine/internal/config"
	"github.com/goldpawn/pawn-engine/internal/domain"
	"github.com/goldpawn/pawn-engine/internal/rates"
	"github.com/goldpawn/pawn-engine/internal/repository"
	"github.com/goldpawn/pawn-engine/internal/scheme"
	customError "github.com/goldpawn/pawn-engine/pkg/errors"
	"github.com/goldpawn/pawn-engine/pkg/utils"
)

// PawnService wires the calculation core to storage: scheme configuration,
// rate resolution with creation-time snapshots, and loan closure.
type PawnService struct {
	schemeRepo  repository.SchemeRepository
	rateRepo    repository.RateRepository
	loanRepo    repository.LoanRepository
	closureRepo repository.ClosureRepository
	registry    *rates.Registry
	redis       *redis.Client
	config      *config.Config
}

func NewPawnService(
	schemeRepo repository.SchemeRepository,
	rateRepo repository.RateRepository,
	loanRepo repository.LoanRepository,
	closureRepo repository.ClosureRepository,
	registry *rates.Registry,
	redisClient *redis.Client,
	cfg *config.Config,
) *PawnService {
	return &PawnService{
		schemeRepo:  schemeRepo,
		rateRepo:    rateRepo,
		loanRepo:    loanRepo,
		closureRepo: closureRepo,
		registry:    registry,
		redis:       redisClient,
		config:      cfg,
	}
}

// CreateScheme validates the operator-authored config blob once at the
// boundary and persists the scheme.
func (s *PawnService) CreateScheme(ctx context.Context, request *domain.CreateSchemeRequest) (*domain.Scheme, error) {
	if _, err := scheme.ParseConfig(request.CalculationType, request.Config); err != nil {
		return nil, err
	}

	now := time.Now()
	sch := &domain.Scheme{
		ID:              uuid.New(),
		Name:            request.Name,
		InterestRate:    request.InterestRate,
		InterestPeriod:  request.InterestPeriod,
		CalculationType: request.CalculationType,
		Config:          request.Config,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.schemeRepo.Create(ctx, sch); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.cacheScheme(ctx, sch)

	return sch, nil
}

// GetScheme reads a scheme cache-aside: schemes are immutable config and
// read on every closure, so they cache well.
func (s *PawnService) GetScheme(ctx context.Context, id uuid.UUID) (*domain.Scheme, error) {
	if cached := s.cachedScheme(ctx, id); cached != nil {
		return cached, nil
	}

	sch, err := s.schemeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapSchemeNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	s.cacheScheme(ctx, sch)

	return sch, nil
}

// CreateRate registers a jewel-type rate row (or the universal fallback when
// no jewel type is given). Existing loans keep their snapshots.
func (s *PawnService) CreateRate(ctx context.Context, request *domain.CreateRateRequest) (*domain.RateFact, error) {
	now := time.Now()
	rate := &domain.RateFact{
		ID:                   uuid.New(),
		Rate:                 request.Rate,
		EstimationPercentage: request.EstimationPercentage,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if request.JewelTypeID != nil {
		rate.JewelTypeID = uuid.NullUUID{UUID: *request.JewelTypeID, Valid: true}
	}
	if request.PostValidityRate != nil {
		rate.PostValidityRate = decimal.NullDecimal{Decimal: *request.PostValidityRate, Valid: true}
	}

	if err := s.rateRepo.Create(ctx, rate); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return rate, nil
}

// CreateLoan resolves the applicable rate fact and snapshots it onto the
// loan. From here on the snapshot is authoritative; the registry is never
// consulted again for this loan.
func (s *PawnService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	existing, err := s.loanRepo.GetByLoanNo(ctx, request.LoanNo)
	if err == nil && existing != nil {
		return nil, customError.WrapLoanAlreadyExists(request.LoanNo)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	if request.Principal.IsNegative() {
		return nil, customError.WrapInvalidSpan("principal is negative")
	}

	sch, err := s.GetScheme(ctx, request.SchemeID)
	if err != nil {
		return nil, err
	}
	// Reject loans against schemes whose config has drifted invalid.
	if _, err := scheme.ParseConfig(sch.CalculationType, sch.Config); err != nil {
		return nil, err
	}

	var jewelTypeID uuid.NullUUID
	if request.JewelTypeID != nil {
		jewelTypeID = uuid.NullUUID{UUID: *request.JewelTypeID, Valid: true}
	}

	fact, err := s.registry.Resolve(ctx, jewelTypeID)
	if err != nil {
		return nil, err
	}

	startDate, err := utils.ParseDate(request.StartDate)
	if err != nil {
		return nil, customError.WrapInvalidSpan(fmt.Sprintf("start_date: %v", err))
	}

	validityMonths := request.ValidityMonths
	if validityMonths == 0 {
		validityMonths = s.config.Business.DefaultValidityMonths
	}

	now := time.Now()
	loan := &domain.Loan{
		ID:                   uuid.New(),
		LoanNo:               request.LoanNo,
		SchemeID:             sch.ID,
		JewelTypeID:          jewelTypeID,
		Principal:            request.Principal,
		BalanceAmount:        request.Principal,
		InterestRate:         fact.Rate,
		PostValidityRate:     fact.PostValidityRate,
		EstimationPercentage: fact.EstimationPercentage,
		StartDate:            startDate,
		ValidityMonths:       validityMonths,
		IsRepledge:           request.IsRepledge,
		Status:               domain.LoanStatusActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	log.Info().
		Str("loan_no", loan.LoanNo).
		Str("scheme_id", sch.ID.String()).
		Str("rate", fact.Rate.String()).
		Bool("is_repledge", loan.IsRepledge).
		Msg("loan created with rate snapshot")

	return loan, nil
}

// PreviewClosure computes a closure snapshot without persisting anything.
func (s *PawnService) PreviewClosure(ctx context.Context, loanNo string, asOf time.Time, interestReduction, additionalReduction decimal.Decimal) (*domain.ClosureResult, error) {
	loan, sch, err := s.loanWithScheme(ctx, loanNo)
	if err != nil {
		return nil, err
	}

	return closure.Close(loan, *sch, loan.RateFact(), asOf, interestReduction, additionalReduction)
}

// CloseLoan finalizes a closure: computes the snapshot, persists it as an
// immutable row and marks the loan closed.
func (s *PawnService) CloseLoan(ctx context.Context, loanNo string, asOf time.Time, interestReduction, additionalReduction decimal.Decimal) (*domain.ClosureResult, error) {
	loan, sch, err := s.loanWithScheme(ctx, loanNo)
	if err != nil {
		return nil, err
	}

	if loan.Status == domain.LoanStatusClosed {
		return nil, customError.WrapLoanAlreadyClosed(loanNo)
	}

	result, err := closure.Close(loan, *sch, loan.RateFact(), asOf, interestReduction, additionalReduction)
	if err != nil {
		return nil, err
	}

	result.ID = uuid.New()
	if err := s.closureRepo.Create(ctx, result); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if err := s.loanRepo.UpdateStatus(ctx, loanNo, domain.LoanStatusClosed); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	log.Info().
		Str("loan_no", loanNo).
		Str("total_payable", result.TotalPayable.String()).
		Bool("surcharge_applied", result.SurchargeApplied).
		Str("duration", result.DurationStr).
		Msg("loan closed")

	return result, nil
}

// MarkOverdueLoans flags active loans past their validity period. Run daily
// by the scheduler.
func (s *PawnService) MarkOverdueLoans(ctx context.Context, asOf time.Time) (int, error) {
	loans, err := s.loanRepo.ListActivePastValidity(ctx, asOf)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	marked := 0
	for _, loan := range loans {
		if err := s.loanRepo.UpdateStatus(ctx, loan.LoanNo, domain.LoanStatusOverdue); err != nil {
			log.Error().Err(err).Str("loan_no", loan.LoanNo).Msg("failed to mark loan overdue")
			continue
		}
		marked++
	}

	return marked, nil
}

func (s *PawnService) loanWithScheme(ctx context.Context, loanNo string) (*domain.Loan, *domain.Scheme, error) {
	loan, err := s.loanRepo.GetByLoanNo(ctx, loanNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, customError.WrapLoanNotFound(loanNo)
		}
		return nil, nil, customError.WrapDatabaseError(err)
	}

	sch, err := s.GetScheme(ctx, loan.SchemeID)
	if err != nil {
		return nil, nil, err
	}

	return loan, sch, nil
}

func (s *PawnService) cacheScheme(ctx context.Context, sch *domain.Scheme) {
	if s.redis == nil {
		return
	}

	payload, err := json.Marshal(sch)
	if err != nil {
		return
	}

	if err := s.redis.Set(ctx, schemeCacheKey(sch.ID), payload, s.config.Business.SchemeCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("scheme_id", sch.ID.String()).Msg("scheme cache write failed")
	}
}

func (s *PawnService) cachedScheme(ctx context.Context, id uuid.UUID) *domain.Scheme {
	if s.redis == nil {
		return nil
	}

	payload, err := s.redis.Get(ctx, schemeCacheKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("scheme_id", id.String()).Msg("scheme cache read failed")
		}
		return nil
	}

	var sch domain.Scheme
	if err := json.Unmarshal(payload, &sch); err != nil {
		return nil
	}

	return &sch
}

func schemeCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("scheme:%s", id.String())
}
