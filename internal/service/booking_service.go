package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hostalpos/internal/clock"
	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/repository"
	"hostalpos/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingService interface {
	Create(ctx context.Context, usuarioID uuid.UUID, req dto.CreateBookingRequest) (*dto.BookingResponse, error)
	Finish(ctx context.Context, usuarioID, bookingID uuid.UUID, req dto.FinishBookingRequest) (*dto.BookingResponse, error)
	ExtendTime(ctx context.Context, usuarioID, bookingID uuid.UUID, req dto.ExtendTimeRequest) (*dto.BookingResponse, error)
	AddConsumption(ctx context.Context, usuarioID, bookingID uuid.UUID, req dto.AddConsumptionRequest) (*dto.BookingResponse, error)
	Cancel(ctx context.Context, usuarioID, bookingID uuid.UUID, motivo string) error
	Get(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error)
	List(ctx context.Context, filter dto.BookingFilter) (*dto.BookingListResponse, error)
	Ticket(ctx context.Context, bookingID uuid.UUID) (*dto.TicketResponse, error)

	// Room-scoped queries and the post-expiry charge, addressed by room
	// because reception works off the room board.
	CheckoutDetails(ctx context.Context, roomID uuid.UUID) (*dto.CheckoutDetailsResponse, error)
	CalculateExtraTime(ctx context.Context, roomID uuid.UUID) (*dto.ExtraTimeResponse, error)
	ChargeExtraTime(ctx context.Context, usuarioID, roomID uuid.UUID) (*dto.BookingResponse, error)
}

type bookingService struct {
	repo         repository.BookingRepository
	roomRepo     repository.RoomRepository
	rooms        RoomService
	rateRepo     repository.RateTypeRepository
	customerRepo repository.CustomerRepository
	productoRepo repository.ProductoRepository
	pagos        PaymentService
	dispatcher   *worker.Dispatcher
	clk          clock.Clock
}

func NewBookingService(
	repo repository.BookingRepository,
	roomRepo repository.RoomRepository,
	rooms RoomService,
	rateRepo repository.RateTypeRepository,
	customerRepo repository.CustomerRepository,
	productoRepo repository.ProductoRepository,
	pagos PaymentService,
	dispatcher *worker.Dispatcher,
	clk clock.Clock,
) BookingService {
	return &bookingService{
		repo:         repo,
		roomRepo:     roomRepo,
		rooms:        rooms,
		rateRepo:     rateRepo,
		customerRepo: customerRepo,
		productoRepo: productoRepo,
		pagos:        pagos,
		dispatcher:   dispatcher,
		clk:          clk,
	}
}

// ── Create ────────────────────────────────────────────────────────────────────
// Single transaction: room row lock spans the availability check and the
// insert, so two receptions racing for the same room serialize. Initial
// consumptions bill as paid, initial payments go through the ledger, and
// the stay checks in immediately.

func (s *bookingService) Create(ctx context.Context, usuarioID uuid.UUID, req dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("room_id inválido: %w", err)
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("customer_id inválido: %w", err)
	}
	rateTypeID, err := uuid.Parse(req.RateTypeID)
	if err != nil {
		return nil, fmt.Errorf("rate_type_id inválido: %w", err)
	}
	registerID, err := uuid.Parse(req.CashRegisterID)
	if err != nil {
		return nil, fmt.Errorf("cash_register_id inválido: %w", err)
	}

	rate, err := s.rateRepo.FindByID(ctx, rateTypeID)
	if err != nil || !rate.Activo || rate.DuracionHoras <= 0 {
		return nil, ErrRateInvalida
	}
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, errors.New("cliente no encontrado")
	}

	// Pre-flight: resolve consumption products outside the transaction.
	type resolvedLine struct {
		productoID uuid.UUID
		nombre     string
		precio     decimal.Decimal
		cantidad   int
		total      decimal.Decimal
	}
	var lines []resolvedLine
	productsSubtotal := decimal.Zero
	for _, item := range req.Consumptions {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product_id inválido: %w", err)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil || !p.Activo {
			return nil, fmt.Errorf("producto %s no disponible", item.ProductID)
		}
		total := p.PrecioVenta.Mul(decimal.NewFromInt(int64(item.Cantidad))).Round(2)
		productsSubtotal = productsSubtotal.Add(total)
		lines = append(lines, resolvedLine{
			productoID: pid, nombre: p.Nombre, precio: p.PrecioVenta,
			cantidad: item.Cantidad, total: total,
		})
	}

	cantidad := decimal.NewFromInt(int64(req.Cantidad))
	totalHoras := cantidad.Mul(decimal.NewFromInt(int64(rate.DuracionHoras)))
	roomSubtotal := subtotalHabitacion(rate.PrecioUnidad, cantidad)
	subtotal := roomSubtotal.Add(productsSubtotal)

	voucherType := req.VoucherType
	if voucherType == "" {
		voucherType = "ticket"
	}

	var booking model.Booking
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, roomID)
		if err != nil {
			return errors.New("habitación no encontrada")
		}
		if !room.Disponible() {
			return ErrRoomNotAvailable
		}
		if _, err := s.repo.FindActiveByRoom(ctx, tx, roomID); err == nil {
			return ErrRoomOccupied
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := s.clk.Now()
		checkOut := now.Add(time.Duration(totalHoras.Mul(sixty).IntPart()) * time.Minute)

		booking = model.Booking{
			BookingCode:      generarBookingCode(now),
			RoomID:           roomID,
			CustomerID:       customerID,
			RateTypeID:       rateTypeID,
			CheckIn:          now,
			CheckOut:         checkOut,
			Cantidad:         cantidad,
			TotalHoras:       totalHoras,
			PrecioUnidad:     rate.PrecioUnidad,
			PrecioHora:       rate.PrecioPorHora(),
			RoomSubtotal:     roomSubtotal,
			ProductsSubtotal: productsSubtotal,
			Subtotal:         subtotal,
			TotalAmount:      subtotal,
			Estado:           model.BookingConfirmed,
			VoucherType:      voucherType,
			Notas:            req.Notas,
			CreatedBy:        &usuarioID,
		}
		if err := s.repo.Create(ctx, tx, &booking); err != nil {
			return err
		}

		// Initial consumptions bill as paid: they enter the bill the
		// customer is settling right now.
		for _, line := range lines {
			cons := &model.BookingConsumption{
				BookingID:    booking.ID,
				ProductID:    line.productoID,
				Descripcion:  line.nombre,
				Cantidad:     line.cantidad,
				PrecioUnit:   line.precio,
				TotalLinea:   line.total,
				Estado:       model.ConsumptionPaid,
				RegisteredBy: &usuarioID,
			}
			if err := s.repo.CreateConsumption(ctx, tx, cons); err != nil {
				return err
			}
		}

		for _, in := range req.Payments {
			if _, err := s.pagos.CrearPagoTx(ctx, tx, usuarioID, booking.ID, registerID, in); err != nil {
				return err
			}
		}
		if err := s.pagos.RecalcularPagadoTx(ctx, tx, &booking); err != nil {
			return err
		}

		booking.Estado = model.BookingCheckedIn
		if err := s.repo.Save(ctx, tx, &booking); err != nil {
			return err
		}
		return s.rooms.CambiarEstadoTx(ctx, tx, room, model.RoomOccupied,
			fmt.Sprintf("Check-in %s", booking.BookingCode), &booking.ID, &usuarioID)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Get(ctx, booking.ID)
}

// ── Finish ────────────────────────────────────────────────────────────────────
// Overstay is billed lazily, here: fractional extra hours round UP to
// whole hours at the stored hourly rate. A positive balance rejects the
// checkout (transaction rolls back, nothing observable) unless
// force_checkout is set; residual debt then stays collectible.

func (s *bookingService) Finish(ctx context.Context, usuarioID, bookingID uuid.UUID, req dto.FinishBookingRequest) (*dto.BookingResponse, error) {
	var registerID uuid.UUID
	if len(req.Payments) > 0 {
		var err error
		registerID, err = uuid.Parse(req.CashRegisterID)
		if err != nil {
			return nil, errors.New("cash_register_id es requerido para registrar pagos")
		}
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		booking, err := s.repo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if booking.Estado != model.BookingCheckedIn {
			return ErrBookingNotCheckedIn
		}

		now := s.clk.Now()
		usadas := horasUsadas(booking.CheckIn, now)
		contratadas := booking.TotalHoras
		extra := horasExtra(usadas, contratadas)
		horas := horasACobrar(extra)
		monto := montoExtra(booking.PrecioHora, horas)

		if horas > 0 {
			detalle := fmt.Sprintf("Tiempo extra al finalizar: %d hora(s) (uso %s h sobre %s h contratadas)",
				horas, usadas.StringFixed(2), contratadas.StringFixed(2))
			if err := s.cobrarHorasTx(ctx, tx, booking, horas, monto, model.EventOverstayCharge, detalle, &usuarioID); err != nil {
				return err
			}
		}

		for _, in := range req.Payments {
			if _, err := s.pagos.CrearPagoTx(ctx, tx, usuarioID, booking.ID, registerID, in); err != nil {
				return err
			}
		}
		if err := s.pagos.RecalcularPagadoTx(ctx, tx, booking); err != nil {
			return err
		}

		if balance := booking.Balance(); balance.IsPositive() && !req.ForceCheckout {
			return &BalancePendingError{Breakdown: dto.BalanceBreakdown{
				Balance:         balance,
				TotalAmount:     booking.TotalAmount,
				PaidAmount:      booking.PaidAmount,
				ExtraHours:      decimal.NewFromInt(horas),
				ExtraAmount:     monto,
				HoursContracted: contratadas,
				HoursUsed:       usadas,
			}}
		}

		actualHoras := usadas.Ceil()
		finishType := model.FinishManual
		booking.ActualCheckOut = &now
		booking.ActualHoras = &actualHoras
		booking.FinishType = &finishType
		booking.Estado = model.BookingCheckedOut
		booking.UpdatedBy = &usuarioID
		if err := s.repo.Save(ctx, tx, booking); err != nil {
			return err
		}

		if req.Notas != nil && *req.Notas != "" {
			ev := &model.BookingEvent{
				BookingID: booking.ID,
				Tipo:      model.EventCheckoutNote,
				Detalle:   *req.Notas,
				Actor:     &usuarioID,
			}
			if err := s.repo.CreateEvent(ctx, tx, ev); err != nil {
				return err
			}
		}

		room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, booking.RoomID)
		if err != nil {
			return err
		}
		return s.rooms.CambiarEstadoTx(ctx, tx, room, model.RoomCleaning,
			fmt.Sprintf("Check-out %s", booking.BookingCode), &booking.ID, &usuarioID)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp, err := s.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.encolarRecibo(ctx, bookingID)
	return resp, nil
}

// ── ExtendTime ────────────────────────────────────────────────────────────────
// Voluntary top-up before expiry: bills immediately and pushes check_out.

func (s *bookingService) ExtendTime(ctx context.Context, usuarioID, bookingID uuid.UUID, req dto.ExtendTimeRequest) (*dto.BookingResponse, error) {
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		booking, err := s.repo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if booking.Estado != model.BookingCheckedIn {
			return ErrBookingNotCheckedIn
		}

		horas := int64(req.Horas)
		monto := montoExtra(booking.PrecioHora, horas)
		detalle := fmt.Sprintf("Extensión de %d hora(s)", horas)
		if err := s.cobrarHorasTx(ctx, tx, booking, horas, monto, model.EventExtension, detalle, &usuarioID); err != nil {
			return err
		}

		booking.CheckOut = booking.CheckOut.Add(time.Duration(horas) * time.Hour)
		booking.UpdatedBy = &usuarioID
		return s.repo.Save(ctx, tx, booking)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Get(ctx, bookingID)
}

// ── AddConsumption ────────────────────────────────────────────────────────────

func (s *bookingService) AddConsumption(ctx context.Context, usuarioID, bookingID uuid.UUID, req dto.AddConsumptionRequest) (*dto.BookingResponse, error) {
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		booking, err := s.repo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if booking.Estado != model.BookingCheckedIn {
			return ErrBookingNotCheckedIn
		}

		agregado := decimal.Zero
		for _, item := range req.Items {
			pid, err := uuid.Parse(item.ProductID)
			if err != nil {
				return fmt.Errorf("product_id inválido: %w", err)
			}
			p, err := s.productoRepo.FindByID(ctx, pid)
			if err != nil || !p.Activo {
				return fmt.Errorf("producto %s no disponible", item.ProductID)
			}
			total := p.PrecioVenta.Mul(decimal.NewFromInt(int64(item.Cantidad))).Round(2)
			cons := &model.BookingConsumption{
				BookingID:    booking.ID,
				ProductID:    pid,
				Descripcion:  p.Nombre,
				Cantidad:     item.Cantidad,
				PrecioUnit:   p.PrecioVenta,
				TotalLinea:   total,
				Estado:       model.ConsumptionPending,
				RegisteredBy: &usuarioID,
			}
			if err := s.repo.CreateConsumption(ctx, tx, cons); err != nil {
				return err
			}
			agregado = agregado.Add(total)

			ev := &model.BookingEvent{
				BookingID: booking.ID,
				Tipo:      model.EventConsumption,
				Monto:     &total,
				Detalle:   fmt.Sprintf("%dx %s", item.Cantidad, p.Nombre),
				Actor:     &usuarioID,
			}
			if err := s.repo.CreateEvent(ctx, tx, ev); err != nil {
				return err
			}
		}

		booking.ProductsSubtotal = booking.ProductsSubtotal.Add(agregado)
		booking.Subtotal = booking.Subtotal.Add(agregado)
		booking.TotalAmount = booking.TotalAmount.Add(agregado)
		booking.UpdatedBy = &usuarioID
		return s.repo.Save(ctx, tx, booking)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Get(ctx, bookingID)
}

// ── Cancel ────────────────────────────────────────────────────────────────────

func (s *bookingService) Cancel(ctx context.Context, usuarioID, bookingID uuid.UUID, motivo string) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		booking, err := s.repo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if booking.Estado == model.BookingCheckedIn {
			return ErrCancelAfterCheckIn
		}
		if !booking.PuedeCancelar() {
			return ErrBookingTerminal
		}

		now := s.clk.Now()
		booking.Estado = model.BookingCancelled
		booking.CancelledAt = &now
		booking.CancellationReason = &motivo
		booking.UpdatedBy = &usuarioID
		return s.repo.Save(ctx, tx, booking)
	})
}

// ── Room-scoped reads and the post-expiry charge ──────────────────────────────

func (s *bookingService) activeByRoom(ctx context.Context, roomID uuid.UUID) (*model.Booking, error) {
	b, err := s.repo.FindActiveByRoom(ctx, s.repo.DB(), roomID)
	if err != nil {
		return nil, ErrBookingNotActive
	}
	full, err := s.repo.FindByID(ctx, b.ID)
	if err != nil {
		return nil, ErrBookingNotActive
	}
	return full, nil
}

// CheckoutDetails previews the finish charge. Read-only.
func (s *bookingService) CheckoutDetails(ctx context.Context, roomID uuid.UUID) (*dto.CheckoutDetailsResponse, error) {
	booking, err := s.activeByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if booking.Estado != model.BookingCheckedIn {
		return nil, ErrBookingNotCheckedIn
	}

	now := s.clk.Now()
	usadas := horasUsadas(booking.CheckIn, now)
	extra := horasExtra(usadas, booking.TotalHoras)
	horas := horasACobrar(extra)
	monto := montoExtra(booking.PrecioHora, horas)
	totalProyectado := booking.TotalAmount.Add(monto)

	roomNumber := ""
	if booking.Room != nil {
		roomNumber = booking.Room.RoomNumber
	}
	return &dto.CheckoutDetailsResponse{
		BookingID:       booking.ID.String(),
		BookingCode:     booking.BookingCode,
		RoomNumber:      roomNumber,
		HoursContracted: booking.TotalHoras,
		HoursUsed:       usadas,
		ExtraHours:      extra,
		ExtraAmount:     monto,
		TotalAmount:     totalProyectado,
		PaidAmount:      booking.PaidAmount,
		Balance:         totalProyectado.Sub(booking.PaidAmount),
	}, nil
}

// CalculateExtraTime quotes the accrued overstay past the scheduled
// check-out. Errors when the stay has not expired yet.
func (s *bookingService) CalculateExtraTime(ctx context.Context, roomID uuid.UUID) (*dto.ExtraTimeResponse, error) {
	booking, err := s.activeByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if booking.Estado != model.BookingCheckedIn {
		return nil, ErrBookingNotCheckedIn
	}

	now := s.clk.Now()
	if !now.After(booking.CheckOut) {
		return nil, ErrNoVencida
	}
	extra := horasUsadas(booking.CheckOut, now)
	horas := horasACobrar(extra)
	return &dto.ExtraTimeResponse{
		BookingID:   booking.ID.String(),
		CheckOut:    booking.CheckOut.Format("2006-01-02T15:04:05Z"),
		ExtraHours:  extra,
		HorasCobro:  horas,
		ExtraAmount: montoExtra(booking.PrecioHora, horas),
	}, nil
}

// ChargeExtraTime bills the accrued overstay now and reschedules
// check_out to cover the billed hours.
func (s *bookingService) ChargeExtraTime(ctx context.Context, usuarioID, roomID uuid.UUID) (*dto.BookingResponse, error) {
	var bookingID uuid.UUID
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		active, err := s.repo.FindActiveByRoom(ctx, tx, roomID)
		if err != nil {
			return ErrBookingNotActive
		}
		booking, err := s.repo.FindByIDForUpdate(ctx, tx, active.ID)
		if err != nil {
			return ErrBookingNotFound
		}
		if booking.Estado != model.BookingCheckedIn {
			return ErrBookingNotCheckedIn
		}
		bookingID = booking.ID

		now := s.clk.Now()
		if !now.After(booking.CheckOut) {
			return ErrNoVencida
		}
		extra := horasUsadas(booking.CheckOut, now)
		horas := horasACobrar(extra)
		monto := montoExtra(booking.PrecioHora, horas)

		detalle := fmt.Sprintf("Cobro de tiempo extra vencido: %d hora(s)", horas)
		if err := s.cobrarHorasTx(ctx, tx, booking, horas, monto, model.EventOverstayCharge, detalle, &usuarioID); err != nil {
			return err
		}

		booking.CheckOut = now.Add(time.Duration(horas) * time.Hour)
		booking.UpdatedBy = &usuarioID
		return s.repo.Save(ctx, tx, booking)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Get(ctx, bookingID)
}

// cobrarHorasTx is the shared billing primitive for overstay, extensions
// and expired-time charges: same fields move on every path.
func (s *bookingService) cobrarHorasTx(ctx context.Context, tx *gorm.DB, b *model.Booking, horas int64, monto decimal.Decimal, tipo, detalle string, actor *uuid.UUID) error {
	h := decimal.NewFromInt(horas)
	b.TotalHoras = b.TotalHoras.Add(h)
	b.RoomSubtotal = b.RoomSubtotal.Add(monto)
	b.Subtotal = b.Subtotal.Add(monto)
	b.TotalAmount = b.TotalAmount.Add(monto)

	ev := &model.BookingEvent{
		BookingID: b.ID,
		Tipo:      tipo,
		Horas:     &h,
		Monto:     &monto,
		Detalle:   detalle,
		Actor:     actor,
	}
	return s.repo.CreateEvent(ctx, tx, ev)
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *bookingService) Get(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	return bookingToResponse(booking), nil
}

func (s *bookingService) List(ctx context.Context, filter dto.BookingFilter) (*dto.BookingListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	bookings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	sumTotal, sumPaid, err := s.repo.SumTotals(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		items = append(items, *bookingToResponse(&bookings[i]))
	}
	return &dto.BookingListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
		Totales: dto.BookingTotals{
			TotalAmount: sumTotal,
			PaidAmount:  sumPaid,
			Balance:     sumTotal.Sub(sumPaid),
		},
	}, nil
}

func (s *bookingService) Ticket(ctx context.Context, bookingID uuid.UUID) (*dto.TicketResponse, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	roomNumber, customer, rateType := "", "", ""
	if booking.Room != nil {
		roomNumber = booking.Room.RoomNumber
	}
	if booking.Customer != nil {
		customer = booking.Customer.Nombre
	}
	if booking.RateType != nil {
		rateType = booking.RateType.Nombre
	}

	cons := make([]dto.ConsumptionResponse, 0, len(booking.Consumptions))
	for i := range booking.Consumptions {
		cons = append(cons, consumptionToResponse(&booking.Consumptions[i]))
	}
	pagos := make([]dto.PaymentResponse, 0, len(booking.Payments))
	for i := range booking.Payments {
		pagos = append(pagos, *pagoToResponse(&booking.Payments[i]))
	}

	return &dto.TicketResponse{
		BookingCode:  booking.BookingCode,
		RoomNumber:   roomNumber,
		Customer:     customer,
		CheckIn:      booking.CheckIn.Format("2006-01-02T15:04:05Z"),
		CheckOut:     booking.CheckOut.Format("2006-01-02T15:04:05Z"),
		RateType:     rateType,
		RoomSubtotal: booking.RoomSubtotal,
		Consumptions: cons,
		TotalAmount:  booking.TotalAmount,
		PaidAmount:   booking.PaidAmount,
		Balance:      booking.Balance(),
		Payments:     pagos,
	}, nil
}

func (s *bookingService) encolarRecibo(ctx context.Context, bookingID uuid.UUID) {
	if s.dispatcher == nil {
		return
	}
	payload := worker.ReceiptJobPayload{BookingID: bookingID.String()}
	if booking, err := s.repo.FindByID(ctx, bookingID); err == nil &&
		booking.Customer != nil && booking.Customer.Email != nil {
		payload.ClienteEmail = booking.Customer.Email
	}
	_ = s.dispatcher.EnqueueReceipt(ctx, payload)
}

func consumptionToResponse(c *model.BookingConsumption) dto.ConsumptionResponse {
	nombre := c.Descripcion
	if c.Product != nil {
		nombre = c.Product.Nombre
	}
	return dto.ConsumptionResponse{
		ID:         c.ID.String(),
		Producto:   nombre,
		Cantidad:   c.Cantidad,
		PrecioUnit: c.PrecioUnit,
		TotalLinea: c.TotalLinea,
		Estado:     c.Estado,
		CreatedAt:  c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func bookingToResponse(b *model.Booking) *dto.BookingResponse {
	resp := &dto.BookingResponse{
		ID:               b.ID.String(),
		BookingCode:      b.BookingCode,
		RoomID:           b.RoomID.String(),
		CustomerID:       b.CustomerID.String(),
		CheckIn:          b.CheckIn.Format("2006-01-02T15:04:05Z"),
		CheckOut:         b.CheckOut.Format("2006-01-02T15:04:05Z"),
		Cantidad:         b.Cantidad,
		TotalHoras:       b.TotalHoras,
		ActualHoras:      b.ActualHoras,
		RoomSubtotal:     b.RoomSubtotal,
		ProductsSubtotal: b.ProductsSubtotal,
		Subtotal:         b.Subtotal,
		TotalAmount:      b.TotalAmount,
		PaidAmount:       b.PaidAmount,
		Balance:          b.Balance(),
		Estado:           b.Estado,
		FinishType:       b.FinishType,
		Notas:            b.Notas,
		CreatedAt:        b.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if b.ActualCheckOut != nil {
		t := b.ActualCheckOut.Format("2006-01-02T15:04:05Z")
		resp.ActualCheckOut = &t
	}
	if b.Room != nil {
		resp.RoomNumber = b.Room.RoomNumber
	}
	if b.Customer != nil {
		resp.Customer = b.Customer.Nombre
	}
	if b.RateType != nil {
		resp.RateType = b.RateType.Nombre
	}
	for i := range b.Consumptions {
		resp.Consumptions = append(resp.Consumptions, consumptionToResponse(&b.Consumptions[i]))
	}
	for i := range b.Payments {
		resp.Payments = append(resp.Payments, *pagoToResponse(&b.Payments[i]))
	}
	return resp
}
