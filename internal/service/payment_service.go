package service

import (
	"context"
	"errors"
	"fmt"

	"hostalpos/internal/clock"
	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExchangeRates converts a currency to the base currency. Implemented by
// infra.ExchangeClient (HTTP lookup behind a circuit breaker, cached).
type ExchangeRates interface {
	Rate(ctx context.Context, moneda string) (decimal.Decimal, error)
}

type PaymentService interface {
	RecordPayment(ctx context.Context, usuarioID uuid.UUID, req dto.RecordPaymentRequest) (*dto.PaymentResponse, error)
	Refund(ctx context.Context, usuarioID uuid.UUID, paymentID uuid.UUID, motivo string) (*dto.PaymentResponse, error)
	List(ctx context.Context, filter dto.PaymentFilter) (*dto.PaymentListResponse, error)

	// Transaction-scoped primitives used by BookingService so booking
	// creation and checkout share the exact payment rules.
	CrearPagoTx(ctx context.Context, tx *gorm.DB, usuarioID uuid.UUID, bookingID, registerID uuid.UUID, in dto.PaymentInput) (*model.Payment, error)
	RecalcularPagadoTx(ctx context.Context, tx *gorm.DB, b *model.Booking) error
}

type paymentService struct {
	repo       repository.PaymentRepository
	methodRepo repository.PaymentMethodRepository
	cajaRepo   repository.CajaRepository
	bookings   repository.BookingRepository
	exchange   ExchangeRates
	clk        clock.Clock
	baseMoneda string
}

func NewPaymentService(
	repo repository.PaymentRepository,
	methodRepo repository.PaymentMethodRepository,
	cajaRepo repository.CajaRepository,
	bookings repository.BookingRepository,
	exchange ExchangeRates,
	clk clock.Clock,
	baseMoneda string,
) PaymentService {
	return &paymentService{
		repo:       repo,
		methodRepo: methodRepo,
		cajaRepo:   cajaRepo,
		bookings:   bookings,
		exchange:   exchange,
		clk:        clk,
		baseMoneda: baseMoneda,
	}
}

// ── CrearPagoTx ───────────────────────────────────────────────────────────────
// Validation order: amount, method reference, open register. The exchange
// rate is captured once here; later rate changes never touch the row.

func (s *paymentService) CrearPagoTx(ctx context.Context, tx *gorm.DB, usuarioID uuid.UUID, bookingID, registerID uuid.UUID, in dto.PaymentInput) (*model.Payment, error) {
	if !in.Amount.IsPositive() {
		return nil, ErrMontoInvalido
	}

	methodID, err := uuid.Parse(in.MethodID)
	if err != nil {
		return nil, fmt.Errorf("method_id inválido: %w", err)
	}
	method, err := s.methodRepo.FindByID(ctx, methodID)
	if err != nil {
		return nil, errors.New("método de pago no encontrado")
	}
	if method.RequiresReference && (in.OperationNumber == nil || *in.OperationNumber == "") {
		return nil, ErrReferenciaRequerida
	}

	if _, err := s.cajaRepo.FindSesionAbiertaByRegister(ctx, registerID); err != nil {
		return nil, ErrCajaCerrada
	}

	moneda := in.Moneda
	if moneda == "" {
		moneda = s.baseMoneda
	}
	rate := decimal.NewFromInt(1)
	if moneda != s.baseMoneda {
		rate, err = s.exchange.Rate(ctx, moneda)
		if err != nil {
			return nil, fmt.Errorf("no se pudo obtener el tipo de cambio de %s: %w", moneda, err)
		}
	}

	now := s.clk.Now()
	pago := &model.Payment{
		PaymentCode:     generarPaymentCode(now),
		BookingID:       bookingID,
		MethodID:        methodID,
		CashRegisterID:  registerID,
		Moneda:          moneda,
		Amount:          in.Amount,
		ExchangeRate:    rate,
		AmountBase:      in.Amount.Mul(rate).Round(2),
		OperationNumber: in.OperationNumber,
		Estado:          model.PaymentCompleted,
		PaymentDate:     now,
		ReceivedBy:      &usuarioID,
	}
	if err := s.repo.Create(ctx, tx, pago); err != nil {
		return nil, err
	}
	pago.Method = method
	return pago, nil
}

// RecalcularPagadoTx rewrites paid_amount from the payment aggregate.
// Callers must hold the booking row lock.
func (s *paymentService) RecalcularPagadoTx(ctx context.Context, tx *gorm.DB, b *model.Booking) error {
	sum, err := s.repo.SumCompletedByBooking(ctx, tx, b.ID)
	if err != nil {
		return err
	}
	b.PaidAmount = sum
	return s.bookings.Save(ctx, tx, b)
}

// ── RecordPayment ─────────────────────────────────────────────────────────────

func (s *paymentService) RecordPayment(ctx context.Context, usuarioID uuid.UUID, req dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("booking_id inválido: %w", err)
	}
	registerID, err := uuid.Parse(req.CashRegisterID)
	if err != nil {
		return nil, fmt.Errorf("cash_register_id inválido: %w", err)
	}

	var pago *model.Payment
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		booking, err := s.bookings.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		// Payments are valid while the stay is active, and after a forced
		// checkout while residual debt remains.
		switch booking.Estado {
		case model.BookingConfirmed, model.BookingCheckedIn:
		case model.BookingCheckedOut:
			if !booking.Balance().IsPositive() {
				return ErrBookingTerminal
			}
		default:
			return ErrBookingTerminal
		}

		in := dto.PaymentInput{
			MethodID:        req.MethodID,
			Amount:          req.Amount,
			Moneda:          req.Moneda,
			OperationNumber: req.OperationNumber,
		}
		pago, err = s.CrearPagoTx(ctx, tx, usuarioID, bookingID, registerID, in)
		if err != nil {
			return err
		}
		if req.Notas != nil {
			pago.Notas = req.Notas
			if err := s.repo.Save(ctx, tx, pago); err != nil {
				return err
			}
		}
		return s.RecalcularPagadoTx(ctx, tx, booking)
	})
	if txErr != nil {
		return nil, txErr
	}
	return pagoToResponse(pago), nil
}

// ── Refund ────────────────────────────────────────────────────────────────────

func (s *paymentService) Refund(ctx context.Context, usuarioID uuid.UUID, paymentID uuid.UUID, motivo string) (*dto.PaymentResponse, error) {
	pago, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, ErrPagoNoEncontrado
	}
	if pago.Estado != model.PaymentCompleted {
		return nil, ErrPagoNoReembolsable
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		booking, err := s.bookings.FindByIDForUpdate(ctx, tx, pago.BookingID)
		if err != nil {
			return ErrBookingNotFound
		}

		pago.Estado = model.PaymentRefunded
		nota := fmt.Sprintf("Reembolso: %s", motivo)
		if pago.Notas != nil && *pago.Notas != "" {
			nota = *pago.Notas + " | " + nota
		}
		pago.Notas = &nota
		if err := s.repo.Save(ctx, tx, pago); err != nil {
			return err
		}
		return s.RecalcularPagadoTx(ctx, tx, booking)
	})
	if txErr != nil {
		return nil, txErr
	}
	return pagoToResponse(pago), nil
}

// ── List ──────────────────────────────────────────────────────────────────────

func (s *paymentService) List(ctx context.Context, filter dto.PaymentFilter) (*dto.PaymentListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	pagos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	sums, err := s.repo.SumByMethod(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PaymentResponse, 0, len(pagos))
	for i := range pagos {
		items = append(items, *pagoToResponse(&pagos[i]))
	}
	rows := make([]dto.MethodTotalRow, 0, len(sums))
	for _, sum := range sums {
		rows = append(rows, dto.MethodTotalRow{Metodo: sum.Metodo, Total: sum.Total})
	}
	return &dto.PaymentListResponse{
		Data:             items,
		Total:            total,
		Page:             filter.Page,
		Limit:            filter.Limit,
		TotalesPorMetodo: rows,
	}, nil
}

func pagoToResponse(p *model.Payment) *dto.PaymentResponse {
	metodo := ""
	if p.Method != nil {
		metodo = p.Method.Nombre
	}
	return &dto.PaymentResponse{
		ID:              p.ID.String(),
		PaymentCode:     p.PaymentCode,
		BookingID:       p.BookingID.String(),
		Metodo:          metodo,
		CashRegisterID:  p.CashRegisterID.String(),
		Moneda:          p.Moneda,
		Amount:          p.Amount,
		ExchangeRate:    p.ExchangeRate,
		AmountBase:      p.AmountBase,
		OperationNumber: p.OperationNumber,
		Estado:          p.Estado,
		PaymentDate:     p.PaymentDate.Format("2006-01-02T15:04:05Z"),
		Notas:           p.Notas,
	}
}
