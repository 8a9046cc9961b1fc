package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hostalpos/internal/clock"
	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository fakes. Reads return copies so a transaction that
// errors out mid-way leaves the stored row untouched, matching the SQL
// rollback the services rely on.

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Booking repo ─────────────────────────────────────────────────────────────

type fakeBookingRepo struct {
	mu           sync.Mutex
	bookings     map[uuid.UUID]*model.Booking
	consumptions []*model.BookingConsumption
	events       []*model.BookingEvent
}

var _ repository.BookingRepository = (*fakeBookingRepo)(nil)

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*model.Booking)}
}

func (f *fakeBookingRepo) DB() *gorm.DB { return nil }

func (f *fakeBookingRepo) Create(_ context.Context, _ *gorm.DB, b *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	stored := *b
	f.bookings[b.ID] = &stored
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) FindByIDForUpdate(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Booking, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeBookingRepo) FindActiveByRoom(_ context.Context, _ *gorm.DB, roomID uuid.UUID) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.RoomID == roomID && b.Activa() {
			cp := *b
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBookingRepo) Save(_ context.Context, _ *gorm.DB, b *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *b
	f.bookings[b.ID] = &stored
	return nil
}

func (f *fakeBookingRepo) List(_ context.Context, filter dto.BookingFilter) ([]model.Booking, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Booking
	for _, b := range f.bookings {
		if filter.Estado != "" && filter.Estado != "all" && b.Estado != filter.Estado {
			continue
		}
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (f *fakeBookingRepo) SumTotals(_ context.Context, filter dto.BookingFilter) (decimal.Decimal, decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total, paid := decimal.Zero, decimal.Zero
	for _, b := range f.bookings {
		if filter.Estado != "" && filter.Estado != "all" && b.Estado != filter.Estado {
			continue
		}
		total = total.Add(b.TotalAmount)
		paid = paid.Add(b.PaidAmount)
	}
	return total, paid, nil
}

func (f *fakeBookingRepo) CreateConsumption(_ context.Context, _ *gorm.DB, c *model.BookingConsumption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.consumptions = append(f.consumptions, c)
	return nil
}

func (f *fakeBookingRepo) CreateEvent(_ context.Context, _ *gorm.DB, e *model.BookingEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	f.events = append(f.events, e)
	return nil
}

func (f *fakeBookingRepo) eventosDe(id uuid.UUID, tipo string) []*model.BookingEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.BookingEvent
	for _, e := range f.events {
		if e.BookingID == id && e.Tipo == tipo {
			out = append(out, e)
		}
	}
	return out
}

// ── Room repo ────────────────────────────────────────────────────────────────

type fakeRoomRepo struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]*model.Room
	logs  []*model.RoomStatusLog
}

var _ repository.RoomRepository = (*fakeRoomRepo)(nil)

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[uuid.UUID]*model.Room)}
}

func (f *fakeRoomRepo) DB() *gorm.DB { return nil }

func (f *fakeRoomRepo) Create(_ context.Context, r *model.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	stored := *r
	f.rooms[r.ID] = &stored
	return nil
}

func (f *fakeRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoomRepo) FindByIDForUpdate(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Room, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeRoomRepo) List(_ context.Context, filter dto.RoomFilter) ([]model.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Room
	for _, r := range f.rooms {
		if filter.Estado != "" && filter.Estado != "all" && r.Estado != filter.Estado {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRoomRepo) UpdateEstado(_ context.Context, _ *gorm.DB, id uuid.UUID, estado string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rooms[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.Estado = estado
	return nil
}

func (f *fakeRoomRepo) CreateStatusLog(_ context.Context, _ *gorm.DB, l *model.RoomStatusLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, l)
	return nil
}

func (f *fakeRoomRepo) estadoDe(id uuid.UUID) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rooms[id].Estado
}

func (f *fakeRoomRepo) setEstado(id uuid.UUID, estado string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms[id].Estado = estado
}

// ── Catalog repos ────────────────────────────────────────────────────────────

type fakeRateRepo struct {
	rates map[uuid.UUID]*model.RateType
}

var _ repository.RateTypeRepository = (*fakeRateRepo)(nil)

func newFakeRateRepo() *fakeRateRepo { return &fakeRateRepo{rates: make(map[uuid.UUID]*model.RateType)} }

func (f *fakeRateRepo) Create(_ context.Context, rt *model.RateType) error {
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	f.rates[rt.ID] = rt
	return nil
}

func (f *fakeRateRepo) FindByID(_ context.Context, id uuid.UUID) (*model.RateType, error) {
	rt, ok := f.rates[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rt, nil
}

func (f *fakeRateRepo) FindByCode(_ context.Context, code string) (*model.RateType, error) {
	for _, rt := range f.rates {
		if rt.Codigo == code {
			return rt, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRateRepo) List(_ context.Context) ([]model.RateType, error) {
	out := make([]model.RateType, 0, len(f.rates))
	for _, rt := range f.rates {
		out = append(out, *rt)
	}
	return out, nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.customers[c.ID] = c
	return nil
}

func (f *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeCustomerRepo) FindByDocumento(_ context.Context, documento string) (*model.Customer, error) {
	for _, c := range f.customers {
		if c.NumeroDocumento == documento {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCustomerRepo) Search(_ context.Context, _ string, _ int) ([]model.Customer, error) {
	out := make([]model.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	f.customers[c.ID] = c
	return nil
}

type fakeProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

var _ repository.ProductoRepository = (*fakeProductoRepo)(nil)

func newFakeProductoRepo() *fakeProductoRepo {
	return &fakeProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (f *fakeProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.productos[p.ID] = p
	return nil
}

func (f *fakeProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := f.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProductoRepo) FindByBarcode(_ context.Context, barcode string) (*model.Producto, error) {
	for _, p := range f.productos {
		if p.CodigoBarras == barcode {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	out := make([]model.Producto, 0, len(f.productos))
	for _, p := range f.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductoRepo) Update(_ context.Context, p *model.Producto) error {
	f.productos[p.ID] = p
	return nil
}

func (f *fakeProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := f.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (f *fakeProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	p, ok := f.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = true
	return nil
}

type fakeMethodRepo struct {
	methods map[uuid.UUID]*model.PaymentMethod
}

var _ repository.PaymentMethodRepository = (*fakeMethodRepo)(nil)

func newFakeMethodRepo() *fakeMethodRepo {
	return &fakeMethodRepo{methods: make(map[uuid.UUID]*model.PaymentMethod)}
}

func (f *fakeMethodRepo) Create(_ context.Context, m *model.PaymentMethod) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	f.methods[m.ID] = m
	return nil
}

func (f *fakeMethodRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PaymentMethod, error) {
	m, ok := f.methods[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *fakeMethodRepo) FindByCode(_ context.Context, code string) (*model.PaymentMethod, error) {
	for _, m := range f.methods {
		if m.Codigo == code {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMethodRepo) List(_ context.Context) ([]model.PaymentMethod, error) {
	out := make([]model.PaymentMethod, 0, len(f.methods))
	for _, m := range f.methods {
		out = append(out, *m)
	}
	return out, nil
}

// ── Payment repo ─────────────────────────────────────────────────────────────

type fakePaymentRepo struct {
	mu      sync.Mutex
	pagos   []*model.Payment
	methods *fakeMethodRepo
}

var _ repository.PaymentRepository = (*fakePaymentRepo)(nil)

func newFakePaymentRepo(methods *fakeMethodRepo) *fakePaymentRepo {
	return &fakePaymentRepo{methods: methods}
}

func (f *fakePaymentRepo) DB() *gorm.DB { return nil }

func (f *fakePaymentRepo) Create(_ context.Context, _ *gorm.DB, p *model.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	stored := *p
	f.pagos = append(f.pagos, &stored)
	return nil
}

func (f *fakePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.pagos {
		if p.ID == id {
			cp := *p
			cp.Method = f.methods.methods[p.MethodID]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePaymentRepo) Save(_ context.Context, _ *gorm.DB, p *model.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, stored := range f.pagos {
		if stored.ID == p.ID {
			cp := *p
			f.pagos[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakePaymentRepo) ListByBooking(_ context.Context, bookingID uuid.UUID) ([]model.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Payment
	for _, p := range f.pagos {
		if p.BookingID == bookingID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) List(_ context.Context, filter dto.PaymentFilter) ([]model.Payment, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Payment
	for _, p := range f.pagos {
		if filter.Estado != "" && filter.Estado != "all" && p.Estado != filter.Estado {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePaymentRepo) SumCompletedByBooking(_ context.Context, _ *gorm.DB, bookingID uuid.UUID) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := decimal.Zero
	for _, p := range f.pagos {
		if p.BookingID == bookingID && p.Estado == model.PaymentCompleted {
			sum = sum.Add(p.AmountBase)
		}
	}
	return sum, nil
}

func (f *fakePaymentRepo) SumCompletedByRegisterWindow(_ context.Context, _ *gorm.DB, registerID uuid.UUID, desde, hasta time.Time) ([]repository.MethodSum, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	totals := make(map[uuid.UUID]decimal.Decimal)
	var orden []uuid.UUID
	for _, p := range f.pagos {
		if p.CashRegisterID != registerID || p.Estado != model.PaymentCompleted {
			continue
		}
		if p.PaymentDate.Before(desde) || p.PaymentDate.After(hasta) {
			continue
		}
		if _, ok := totals[p.MethodID]; !ok {
			orden = append(orden, p.MethodID)
		}
		totals[p.MethodID] = totals[p.MethodID].Add(p.AmountBase)
	}
	rows := make([]repository.MethodSum, 0, len(orden))
	for _, mid := range orden {
		nombre := mid.String()
		if m, ok := f.methods.methods[mid]; ok {
			nombre = m.Nombre
		}
		rows = append(rows, repository.MethodSum{MethodID: mid, Metodo: nombre, Total: totals[mid]})
	}
	return rows, nil
}

func (f *fakePaymentRepo) CountPendingByRegisterWindow(_ context.Context, _ *gorm.DB, registerID uuid.UUID, desde, hasta time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, p := range f.pagos {
		if p.CashRegisterID == registerID && p.Estado == model.PaymentPending &&
			!p.PaymentDate.Before(desde) && !p.PaymentDate.After(hasta) {
			n++
		}
	}
	return n, nil
}

func (f *fakePaymentRepo) SumByMethod(_ context.Context, _ dto.PaymentFilter) ([]repository.MethodSum, error) {
	return nil, nil
}

// ── Caja repo ────────────────────────────────────────────────────────────────

type fakeCajaRepo struct {
	mu        sync.Mutex
	registers map[uuid.UUID]*model.CashRegister
	sesiones  map[uuid.UUID]*model.CashRegisterSession
	metodos   []*model.CashRegisterSessionPaymentMethod
}

var _ repository.CajaRepository = (*fakeCajaRepo)(nil)

func newFakeCajaRepo() *fakeCajaRepo {
	return &fakeCajaRepo{
		registers: make(map[uuid.UUID]*model.CashRegister),
		sesiones:  make(map[uuid.UUID]*model.CashRegisterSession),
	}
}

func (f *fakeCajaRepo) DB() *gorm.DB { return nil }

func (f *fakeCajaRepo) CreateRegister(_ context.Context, c *model.CashRegister) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	stored := *c
	f.registers[c.ID] = &stored
	return nil
}

func (f *fakeCajaRepo) FindRegisterByID(_ context.Context, id uuid.UUID) (*model.CashRegister, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.registers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCajaRepo) ListRegisters(_ context.Context) ([]model.CashRegister, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.CashRegister, 0, len(f.registers))
	for _, c := range f.registers {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCajaRepo) CountRegisters(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.registers)), nil
}

func (f *fakeCajaRepo) ClaimRegister(_ context.Context, _ *gorm.DB, registerID, sessionID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.registers[registerID]
	if !ok || !c.Activo || c.CurrentSessionID != nil {
		return false, nil
	}
	sid := sessionID
	c.CurrentSessionID = &sid
	return true, nil
}

func (f *fakeCajaRepo) ReleaseRegister(_ context.Context, _ *gorm.DB, registerID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.registers[registerID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.CurrentSessionID = nil
	return nil
}

func (f *fakeCajaRepo) CreateSesion(_ context.Context, _ *gorm.DB, s *model.CashRegisterSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	stored := *s
	f.sesiones[s.ID] = &stored
	return nil
}

func (f *fakeCajaRepo) FindSesionByID(_ context.Context, id uuid.UUID) (*model.CashRegisterSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sesiones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	if reg, ok := f.registers[s.CashRegisterID]; ok {
		r := *reg
		cp.CashRegister = &r
	}
	return &cp, nil
}

func (f *fakeCajaRepo) FindSesionAbiertaByUser(_ context.Context, userID uuid.UUID) (*model.CashRegisterSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sesiones {
		if s.OpenedBy == userID && s.Estado == model.SesionAbierta {
			cp := *s
			if reg, ok := f.registers[s.CashRegisterID]; ok {
				r := *reg
				cp.CashRegister = &r
			}
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCajaRepo) FindSesionAbiertaByRegister(_ context.Context, registerID uuid.UUID) (*model.CashRegisterSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sesiones {
		if s.CashRegisterID == registerID && s.Estado == model.SesionAbierta {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCajaRepo) UpdateSesion(_ context.Context, _ *gorm.DB, s *model.CashRegisterSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.sesiones[s.ID] = &cp
	return nil
}

func (f *fakeCajaRepo) CreateSesionMetodo(_ context.Context, _ *gorm.DB, m *model.CashRegisterSessionPaymentMethod) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metodos = append(f.metodos, m)
	return nil
}

func (f *fakeCajaRepo) ListSesiones(_ context.Context, filter dto.SesionFilter) ([]model.CashRegisterSession, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.CashRegisterSession
	for _, s := range f.sesiones {
		if filter.Estado != "" && filter.Estado != "all" && s.Estado != filter.Estado {
			continue
		}
		if filter.CashRegisterID != "" && s.CashRegisterID.String() != filter.CashRegisterID {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

// ── Exchange fake ────────────────────────────────────────────────────────────

type fakeExchange struct {
	rates map[string]decimal.Decimal
}

var _ ExchangeRates = (*fakeExchange)(nil)

func (f *fakeExchange) Rate(_ context.Context, moneda string) (decimal.Decimal, error) {
	r, ok := f.rates[moneda]
	if !ok {
		return decimal.Zero, errors.New("moneda no soportada: " + moneda)
	}
	return r, nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

// fixture wires the real services over the in-memory fakes. The seeded
// register already has an open session held by cashier so payments can
// be taken right away.
type fixture struct {
	clk       *clock.MockClock
	bookings  *fakeBookingRepo
	rooms     *fakeRoomRepo
	rates     *fakeRateRepo
	customers *fakeCustomerRepo
	productos *fakeProductoRepo
	methods   *fakeMethodRepo
	payments  *fakePaymentRepo
	cajas     *fakeCajaRepo

	roomSvc    RoomService
	paySvc     PaymentService
	bookingSvc BookingService
	cajaSvc    CajaService

	room     *model.Room
	rateHour *model.RateType
	customer *model.Customer
	agua     *model.Producto
	cash     *model.PaymentMethod
	card     *model.PaymentMethod
	register *model.CashRegister

	userID    uuid.UUID
	cashierID uuid.UUID
}

var baseTime = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		clk:       clock.NewMock(baseTime),
		bookings:  newFakeBookingRepo(),
		rooms:     newFakeRoomRepo(),
		rates:     newFakeRateRepo(),
		customers: newFakeCustomerRepo(),
		productos: newFakeProductoRepo(),
		methods:   newFakeMethodRepo(),
		cajas:     newFakeCajaRepo(),
		userID:    uuid.New(),
		cashierID: uuid.New(),
	}
	f.payments = newFakePaymentRepo(f.methods)

	f.room = &model.Room{RoomNumber: "101", Nombre: "Simple 101", Estado: model.RoomAvailable, Activo: true}
	_ = f.rooms.Create(ctx, f.room)

	f.rateHour = &model.RateType{
		Nombre: "Por hora", Codigo: model.RateCodeHour,
		DuracionHoras: 1, PrecioUnidad: dec("10.00"), Activo: true,
	}
	_ = f.rates.Create(ctx, f.rateHour)

	f.customer = &model.Customer{Nombre: "Juan Pérez", TipoDocumento: "dni", NumeroDocumento: "45678912", Activo: true}
	_ = f.customers.Create(ctx, f.customer)

	f.agua = &model.Producto{CodigoBarras: "7750001", Nombre: "Agua mineral", PrecioVenta: dec("3.50"), Activo: true}
	_ = f.productos.Create(ctx, f.agua)

	f.cash = &model.PaymentMethod{Nombre: "Efectivo", Codigo: "CASH", Activo: true}
	f.card = &model.PaymentMethod{Nombre: "Tarjeta", Codigo: "CARD", RequiresReference: true, Activo: true}
	_ = f.methods.Create(ctx, f.cash)
	_ = f.methods.Create(ctx, f.card)

	f.register = &model.CashRegister{Nombre: "Caja 1", Activo: true}
	_ = f.cajas.CreateRegister(ctx, f.register)
	sesion := &model.CashRegisterSession{
		CashRegisterID: f.register.ID,
		Estado:         model.SesionAbierta,
		OpeningAmount:  dec("100.00"),
		OpenedBy:       f.cashierID,
		OpenedAt:       baseTime,
	}
	_ = f.cajas.CreateSesion(ctx, nil, sesion)
	_, _ = f.cajas.ClaimRegister(ctx, nil, f.register.ID, sesion.ID)

	exchange := &fakeExchange{rates: map[string]decimal.Decimal{"USD": dec("3.75")}}

	f.roomSvc = NewRoomService(f.rooms, f.bookings, f.clk)
	f.paySvc = NewPaymentService(f.payments, f.methods, f.cajas, f.bookings, exchange, f.clk, "PEN")
	f.bookingSvc = NewBookingService(f.bookings, f.rooms, f.roomSvc, f.rates, f.customers, f.productos, f.paySvc, nil, f.clk)
	f.cajaSvc = NewCajaService(f.cajas, f.payments, f.methods, f.clk)
	return f
}

func (f *fixture) pagoCash(amount string) dto.PaymentInput {
	return dto.PaymentInput{MethodID: f.cash.ID.String(), Amount: dec(amount)}
}

// crearBooking checks in a stay of n hour-units on the fixture room.
func (f *fixture) crearBooking(t *testing.T, n int, pagos ...dto.PaymentInput) *dto.BookingResponse {
	t.Helper()
	resp, err := f.bookingSvc.Create(context.Background(), f.userID, dto.CreateBookingRequest{
		RoomID:         f.room.ID.String(),
		CustomerID:     f.customer.ID.String(),
		RateTypeID:     f.rateHour.ID.String(),
		CashRegisterID: f.register.ID.String(),
		Cantidad:       n,
		Payments:       pagos,
	})
	if err != nil {
		t.Fatalf("crearBooking: %v", err)
	}
	return resp
}
