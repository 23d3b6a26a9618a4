package service

import (
	"github.com/colective/fleet-backend-go/internal/models"
	"github.com/colective/fleet-backend-go/internal/repository"
)

// RouteService handles business logic for routes
type RouteService struct {
	repo *repository.RouteRepository
}

// NewRouteService creates a new route service
func NewRouteService(repo *repository.RouteRepository) *RouteService {
	return &RouteService{repo: repo}
}

// Create creates a route
func (s *RouteService) Create(req models.CreateRouteRequest) (*models.Route, error) {
	if req.Name == "" {
		return nil, invalidInput("name", "is required")
	}
	return s.repo.CreateRoute(req.Name, req.CompanyID)
}

// List retrieves all routes
func (s *RouteService) List() ([]models.Route, error) {
	return s.repo.ListRoutes()
}

// Get retrieves a route with its ordered points
func (s *RouteService) Get(id int64) (*models.Route, error) {
	return s.repo.GetRouteByID(id)
}

// AddPoint adds an ordered point to a route
func (s *RouteService) AddPoint(req models.CreateRoutePointRequest) (*models.RoutePoint, error) {
	if req.RouteID <= 0 {
		return nil, invalidInput("routeId", "is required")
	}
	return s.repo.CreateRoutePoint(req)
}
