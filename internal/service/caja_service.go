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

type CajaService interface {
	CrearCajas(ctx context.Context, req dto.CrearCajasRequest) ([]dto.CajaResponse, error)
	ListCajas(ctx context.Context) ([]dto.CajaResponse, error)
	Abrir(ctx context.Context, usuarioID, registerID uuid.UUID, req dto.AbrirCajaRequest) (*dto.SesionResponse, error)
	Cerrar(ctx context.Context, usuarioID uuid.UUID, req dto.CerrarCajaRequest) (*dto.CierreResponse, error)
	Resumen(ctx context.Context, sesionID uuid.UUID) (*dto.ResumenSesionResponse, error)
	GetActiva(ctx context.Context, usuarioID uuid.UUID) (*dto.SesionResponse, error)
	Historial(ctx context.Context, filter dto.SesionFilter) (*dto.SesionListResponse, error)
}

type cajaService struct {
	repo       repository.CajaRepository
	pagos      repository.PaymentRepository
	methodRepo repository.PaymentMethodRepository
	clk        clock.Clock
}

func NewCajaService(
	repo repository.CajaRepository,
	pagos repository.PaymentRepository,
	methodRepo repository.PaymentMethodRepository,
	clk clock.Clock,
) CajaService {
	return &cajaService{repo: repo, pagos: pagos, methodRepo: methodRepo, clk: clk}
}

// ── CrearCajas ────────────────────────────────────────────────────────────────
// Registers are named "Caja N", continuing from the current count.

func (s *cajaService) CrearCajas(ctx context.Context, req dto.CrearCajasRequest) ([]dto.CajaResponse, error) {
	existentes, err := s.repo.CountRegisters(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CajaResponse, 0, req.Cantidad)
	for i := 1; i <= req.Cantidad; i++ {
		caja := &model.CashRegister{
			Nombre: fmt.Sprintf("Caja %d", existentes+int64(i)),
			Activo: true,
		}
		if err := s.repo.CreateRegister(ctx, caja); err != nil {
			return nil, err
		}
		out = append(out, *cajaToResponse(caja))
	}
	return out, nil
}

func (s *cajaService) ListCajas(ctx context.Context) ([]dto.CajaResponse, error) {
	cajas, err := s.repo.ListRegisters(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CajaResponse, 0, len(cajas))
	for i := range cajas {
		out = append(out, *cajaToResponse(&cajas[i]))
	}
	return out, nil
}

// ── Abrir ─────────────────────────────────────────────────────────────────────
// Two exclusivity rules enforced in one transaction: the user holds no
// open session on ANY register, and the register itself is free. The
// register claim is an atomic conditional update, so two users racing
// for the same register cannot both win.

func (s *cajaService) Abrir(ctx context.Context, usuarioID, registerID uuid.UUID, req dto.AbrirCajaRequest) (*dto.SesionResponse, error) {
	if req.OpeningAmount.IsNegative() {
		return nil, errors.New("el monto de apertura no puede ser negativo")
	}

	if _, err := s.repo.FindSesionAbiertaByUser(ctx, usuarioID); err == nil {
		return nil, ErrUsuarioConSesion
	}

	caja, err := s.repo.FindRegisterByID(ctx, registerID)
	if err != nil {
		return nil, errors.New("caja no encontrada")
	}
	if !caja.Activo {
		return nil, errors.New("la caja está inactiva")
	}

	var sesion model.CashRegisterSession
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		sesion = model.CashRegisterSession{
			CashRegisterID: registerID,
			Estado:         model.SesionAbierta,
			OpeningAmount:  req.OpeningAmount,
			OpenedBy:       usuarioID,
			OpenedAt:       s.clk.Now(),
		}
		if err := s.repo.CreateSesion(ctx, tx, &sesion); err != nil {
			return err
		}
		ok, err := s.repo.ClaimRegister(ctx, tx, registerID, sesion.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCajaOcupada
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	sesion.CashRegister = caja
	return sesionToResponse(&sesion), nil
}

// ── Cerrar ────────────────────────────────────────────────────────────────────
// Close is one transaction over the user's active session:
//   1. system = completed payments on the register in [opened_at, now],
//      grouped by method
//   2. union with the counted declaration; absent side reads as zero
//   3. one reconciliation row per method, difference = counted - system
//   4. session totals + cerrada, register released
// Nothing is observable partially.

func (s *cajaService) Cerrar(ctx context.Context, usuarioID uuid.UUID, req dto.CerrarCajaRequest) (*dto.CierreResponse, error) {
	sesion, err := s.repo.FindSesionAbiertaByUser(ctx, usuarioID)
	if err != nil {
		return nil, ErrSinSesionActiva
	}
	if sesion.Cerrada() {
		return nil, ErrSesionCerrada
	}

	now := s.clk.Now()

	// Parse counted declaration up front.
	contados := make(map[uuid.UUID]decimal.Decimal, len(req.Conteos))
	for _, c := range req.Conteos {
		mid, err := uuid.Parse(c.MethodID)
		if err != nil {
			return nil, fmt.Errorf("method_id inválido: %w", err)
		}
		contados[mid] = contados[mid].Add(c.Monto)
	}

	var resp *dto.CierreResponse
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// CanClose precondition: no pending payments inside the window.
		// Checked inside the transaction so a payment turning pending
		// between check and commit cannot slip past it.
		pendientes, err := s.pagos.CountPendingByRegisterWindow(ctx, tx, sesion.CashRegisterID, sesion.OpenedAt, now)
		if err != nil {
			return err
		}
		if pendientes > 0 {
			return ErrPagosPendientes
		}

		sistema, err := s.pagos.SumCompletedByRegisterWindow(ctx, tx, sesion.CashRegisterID, sesion.OpenedAt, now)
		if err != nil {
			return err
		}

		// Union of methods: everything the system saw plus everything the
		// cashier counted. A counted method with no payments reads system
		// zero; a system method not counted reads counted zero.
		type unionRow struct {
			metodo  string
			sistema decimal.Decimal
			contado decimal.Decimal
		}
		union := make(map[uuid.UUID]*unionRow)
		orden := make([]uuid.UUID, 0)
		for _, row := range sistema {
			union[row.MethodID] = &unionRow{metodo: row.Metodo, sistema: row.Total}
			orden = append(orden, row.MethodID)
		}
		for mid, monto := range contados {
			if r, ok := union[mid]; ok {
				r.contado = monto
				continue
			}
			nombre := mid.String()
			if m, err := s.methodRepo.FindByID(ctx, mid); err == nil {
				nombre = m.Nombre
			}
			union[mid] = &unionRow{metodo: nombre, contado: monto}
			orden = append(orden, mid)
		}

		systemTotal, countedTotal := decimal.Zero, decimal.Zero
		rows := make([]dto.MetodoCierreRow, 0, len(union))
		for _, mid := range orden {
			r := union[mid]
			diff := r.contado.Sub(r.sistema)
			systemTotal = systemTotal.Add(r.sistema)
			countedTotal = countedTotal.Add(r.contado)

			fila := &model.CashRegisterSessionPaymentMethod{
				SessionID:     sesion.ID,
				MethodID:      mid,
				SystemAmount:  r.sistema,
				CountedAmount: r.contado,
				Difference:    diff,
			}
			if err := s.repo.CreateSesionMetodo(ctx, tx, fila); err != nil {
				return err
			}
			rows = append(rows, dto.MetodoCierreRow{
				MethodID:   mid.String(),
				Metodo:     r.metodo,
				Sistema:    r.sistema,
				Contado:    r.contado,
				Diferencia: diff,
			})
		}

		diferencia := countedTotal.Sub(systemTotal)

		sesion.Estado = model.SesionCerrada
		sesion.SystemTotal = &systemTotal
		sesion.CountedTotal = &countedTotal
		sesion.DifferenceAmount = &diferencia
		sesion.ClosedBy = &usuarioID
		sesion.ClosedAt = &now
		sesion.Observaciones = req.Observaciones
		if err := s.repo.UpdateSesion(ctx, tx, sesion); err != nil {
			return err
		}
		if err := s.repo.ReleaseRegister(ctx, tx, sesion.CashRegisterID); err != nil {
			return err
		}

		caja := ""
		if sesion.CashRegister != nil {
			caja = sesion.CashRegister.Nombre
		}
		resp = &dto.CierreResponse{
			SesionID:      sesion.ID.String(),
			Caja:          caja,
			Metodos:       rows,
			SystemTotal:   systemTotal,
			CountedTotal:  countedTotal,
			Diferencia:    diferencia,
			Clasificacion: model.ClasificarDiferencia(diferencia),
			ClosedAt:      now.Format("2006-01-02T15:04:05Z"),
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return resp, nil
}

// ── Resumen ───────────────────────────────────────────────────────────────────
// Pre-close snapshot. Nothing is persisted; PuedeCerrar is advisory.

func (s *cajaService) Resumen(ctx context.Context, sesionID uuid.UUID) (*dto.ResumenSesionResponse, error) {
	sesion, err := s.repo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return nil, ErrSesionNoEncontrada
	}

	now := s.clk.Now()
	resp := &dto.ResumenSesionResponse{
		SesionID:      sesion.ID.String(),
		OpeningAmount: sesion.OpeningAmount,
		OpenedAt:      sesion.OpenedAt.Format("2006-01-02T15:04:05Z"),
		PuedeCerrar:   true,
	}
	if sesion.CashRegister != nil {
		resp.Caja = sesion.CashRegister.Nombre
	}

	if sesion.Cerrada() {
		motivo := "la sesión ya está cerrada"
		resp.PuedeCerrar = false
		resp.MotivoBloqueo = &motivo
	}

	sistema, err := s.pagos.SumCompletedByRegisterWindow(ctx, s.repo.DB(), sesion.CashRegisterID, sesion.OpenedAt, now)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, row := range sistema {
		resp.Metodos = append(resp.Metodos, dto.MethodTotalRow{Metodo: row.Metodo, Total: row.Total})
		total = total.Add(row.Total)
	}
	resp.SystemTotal = total

	if resp.PuedeCerrar {
		pendientes, err := s.pagos.CountPendingByRegisterWindow(ctx, s.repo.DB(), sesion.CashRegisterID, sesion.OpenedAt, now)
		if err != nil {
			return nil, err
		}
		if pendientes > 0 {
			motivo := fmt.Sprintf("existen %d pago(s) pendiente(s) en la ventana", pendientes)
			resp.PuedeCerrar = false
			resp.MotivoBloqueo = &motivo
		}
	}
	return resp, nil
}

// ── GetActiva / Historial ─────────────────────────────────────────────────────

func (s *cajaService) GetActiva(ctx context.Context, usuarioID uuid.UUID) (*dto.SesionResponse, error) {
	sesion, err := s.repo.FindSesionAbiertaByUser(ctx, usuarioID)
	if err != nil {
		return nil, nil
	}
	return sesionToResponse(sesion), nil
}

func (s *cajaService) Historial(ctx context.Context, filter dto.SesionFilter) (*dto.SesionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sesiones, total, err := s.repo.ListSesiones(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SesionResponse, 0, len(sesiones))
	for i := range sesiones {
		items = append(items, *sesionToResponse(&sesiones[i]))
	}
	return &dto.SesionListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func cajaToResponse(c *model.CashRegister) *dto.CajaResponse {
	resp := &dto.CajaResponse{
		ID:      c.ID.String(),
		Nombre:  c.Nombre,
		Activo:  c.Activo,
		Abierta: c.Abierta(),
	}
	if c.CurrentSessionID != nil {
		id := c.CurrentSessionID.String()
		resp.CurrentSessionID = &id
	}
	return resp
}

func sesionToResponse(s *model.CashRegisterSession) *dto.SesionResponse {
	resp := &dto.SesionResponse{
		ID:             s.ID.String(),
		CashRegisterID: s.CashRegisterID.String(),
		Estado:         s.Estado,
		OpeningAmount:  s.OpeningAmount,
		SystemTotal:    s.SystemTotal,
		CountedTotal:   s.CountedTotal,
		Difference:     s.DifferenceAmount,
		OpenedBy:       s.OpenedBy.String(),
		OpenedAt:       s.OpenedAt.Format("2006-01-02T15:04:05Z"),
		Observaciones:  s.Observaciones,
	}
	if s.CashRegister != nil {
		resp.Caja = s.CashRegister.Nombre
	}
	if s.DifferenceAmount != nil {
		c := model.ClasificarDiferencia(*s.DifferenceAmount)
		resp.Clasificacion = &c
	}
	if s.ClosedBy != nil {
		id := s.ClosedBy.String()
		resp.ClosedBy = &id
	}
	if s.ClosedAt != nil {
		t := s.ClosedAt.Format("2006-01-02T15:04:05Z")
		resp.ClosedAt = &t
	}
	return resp
}
