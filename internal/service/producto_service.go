package service

import (
	"context"
	"errors"

	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ProductoService manages the consumption catalog. Price changes
// invalidate the cached price lookup.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo repository.ProductoRepository
	rdb  *redis.Client
}

func NewProductoService(repo repository.ProductoRepository, rdb *redis.Client) ProductoService {
	return &productoService{repo: repo, rdb: rdb}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	p := &model.Producto{
		CodigoBarras: req.CodigoBarras,
		Nombre:       req.Nombre,
		Descripcion:  req.Descripcion,
		PrecioVenta:  req.PrecioVenta,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		items = append(items, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.PrecioVenta != nil {
		p.PrecioVenta = *req.PrecioVenta
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarPrecio(ctx, p.CodigoBarras)
	return productoToResponse(p), nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("producto no encontrado")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidarPrecio(ctx, p.CodigoBarras)
	return nil
}

// invalidarPrecio drops the cached price entry. Best effort.
func (s *productoService) invalidarPrecio(ctx context.Context, barcode string) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, "precio:"+barcode).Err()
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:           p.ID.String(),
		CodigoBarras: p.CodigoBarras,
		Nombre:       p.Nombre,
		Descripcion:  p.Descripcion,
		PrecioVenta:  p.PrecioVenta,
		Activo:       p.Activo,
	}
}
