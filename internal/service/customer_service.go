package service

import (
	"context"
	"errors"

	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/repository"

	"github.com/google/uuid"
)

type CustomerService interface {
	Crear(ctx context.Context, req dto.CrearCustomerRequest) (*dto.CustomerResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	BuscarPorDocumento(ctx context.Context, documento string) (*dto.CustomerResponse, error)
	Buscar(ctx context.Context, term string) ([]dto.CustomerResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCustomerRequest) (*dto.CustomerResponse, error)
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Crear(ctx context.Context, req dto.CrearCustomerRequest) (*dto.CustomerResponse, error) {
	tipo := req.TipoDocumento
	if tipo == "" {
		tipo = "dni"
	}
	c := &model.Customer{
		Nombre:          req.Nombre,
		TipoDocumento:   tipo,
		NumeroDocumento: req.NumeroDocumento,
		Telefono:        req.Telefono,
		Email:           req.Email,
		Activo:          true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return customerToResponse(c), nil
}

func (s *customerService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	return customerToResponse(c), nil
}

func (s *customerService) BuscarPorDocumento(ctx context.Context, documento string) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByDocumento(ctx, documento)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	return customerToResponse(c), nil
}

func (s *customerService) Buscar(ctx context.Context, term string) ([]dto.CustomerResponse, error) {
	customers, err := s.repo.Search(ctx, term, 20)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, *customerToResponse(&customers[i]))
	}
	return out, nil
}

func (s *customerService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Telefono != nil {
		c.Telefono = req.Telefono
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return customerToResponse(c), nil
}

func customerToResponse(c *model.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:              c.ID.String(),
		Nombre:          c.Nombre,
		TipoDocumento:   c.TipoDocumento,
		NumeroDocumento: c.NumeroDocumento,
		Telefono:        c.Telefono,
		Email:           c.Email,
		Activo:          c.Activo,
	}
}
