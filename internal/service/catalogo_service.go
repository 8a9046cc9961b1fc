package service

import (
	"context"

	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/repository"
)

// CatalogoService exposes the billing catalogs: rate types and payment
// methods.
type CatalogoService interface {
	CrearRateType(ctx context.Context, req dto.CrearRateTypeRequest) (*dto.RateTypeResponse, error)
	ListRateTypes(ctx context.Context) ([]dto.RateTypeResponse, error)
	CrearMetodoPago(ctx context.Context, req dto.CrearMetodoPagoRequest) (*dto.MetodoPagoResponse, error)
	ListMetodosPago(ctx context.Context) ([]dto.MetodoPagoResponse, error)
}

type catalogoService struct {
	rates   repository.RateTypeRepository
	metodos repository.PaymentMethodRepository
}

func NewCatalogoService(rates repository.RateTypeRepository, metodos repository.PaymentMethodRepository) CatalogoService {
	return &catalogoService{rates: rates, metodos: metodos}
}

func (s *catalogoService) CrearRateType(ctx context.Context, req dto.CrearRateTypeRequest) (*dto.RateTypeResponse, error) {
	rt := &model.RateType{
		Nombre:        req.Nombre,
		Codigo:        req.Codigo,
		DuracionHoras: req.DuracionHoras,
		PrecioUnidad:  req.PrecioUnidad,
		Activo:        true,
	}
	if err := s.rates.Create(ctx, rt); err != nil {
		return nil, err
	}
	return rateToResponse(rt), nil
}

func (s *catalogoService) ListRateTypes(ctx context.Context) ([]dto.RateTypeResponse, error) {
	rates, err := s.rates.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RateTypeResponse, 0, len(rates))
	for i := range rates {
		out = append(out, *rateToResponse(&rates[i]))
	}
	return out, nil
}

func (s *catalogoService) CrearMetodoPago(ctx context.Context, req dto.CrearMetodoPagoRequest) (*dto.MetodoPagoResponse, error) {
	m := &model.PaymentMethod{
		Nombre:            req.Nombre,
		Codigo:            req.Codigo,
		RequiresReference: req.RequiresReference,
		SortOrder:         req.SortOrder,
		Activo:            true,
	}
	if err := s.metodos.Create(ctx, m); err != nil {
		return nil, err
	}
	return metodoToResponse(m), nil
}

func (s *catalogoService) ListMetodosPago(ctx context.Context) ([]dto.MetodoPagoResponse, error) {
	metodos, err := s.metodos.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MetodoPagoResponse, 0, len(metodos))
	for i := range metodos {
		out = append(out, *metodoToResponse(&metodos[i]))
	}
	return out, nil
}

func rateToResponse(rt *model.RateType) *dto.RateTypeResponse {
	return &dto.RateTypeResponse{
		ID:            rt.ID.String(),
		Nombre:        rt.Nombre,
		Codigo:        rt.Codigo,
		DuracionHoras: rt.DuracionHoras,
		PrecioUnidad:  rt.PrecioUnidad,
		PrecioHora:    rt.PrecioPorHora(),
		Activo:        rt.Activo,
	}
}

func metodoToResponse(m *model.PaymentMethod) *dto.MetodoPagoResponse {
	return &dto.MetodoPagoResponse{
		ID:                m.ID.String(),
		Nombre:            m.Nombre,
		Codigo:            m.Codigo,
		RequiresReference: m.RequiresReference,
		Activo:            m.Activo,
		SortOrder:         m.SortOrder,
	}
}
