package repository

import (
	"database/sql"
	"fmt"

	"github.com/colective/fleet-backend-go/internal/models"
)

// RouteRepository handles database operations for routes and route points
type RouteRepository struct {
	db *sql.DB
}

// NewRouteRepository creates a new route repository
func NewRouteRepository(db *sql.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

// CreateRoute creates a route
func (r *RouteRepository) CreateRoute(name string, companyID *int64) (*models.Route, error) {
	res, err := r.db.Exec(`INSERT INTO routes (name, company_id) VALUES (?, ?)`, name, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to create route: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get route id: %w", err)
	}

	return &models.Route{ID: id, Name: name, CompanyID: companyID}, nil
}

// ListRoutes retrieves all routes
func (r *RouteRepository) ListRoutes() ([]models.Route, error) {
	rows, err := r.db.Query(`SELECT id, name, company_id FROM routes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query routes: %w", err)
	}
	defer rows.Close()

	var routes []models.Route
	for rows.Next() {
		var rt models.Route
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.CompanyID); err != nil {
			return nil, fmt.Errorf("failed to scan route: %w", err)
		}
		routes = append(routes, rt)
	}

	return routes, rows.Err()
}

// GetRouteByID retrieves a route with its ordered points
func (r *RouteRepository) GetRouteByID(id int64) (*models.Route, error) {
	var rt models.Route
	err := r.db.QueryRow(`SELECT id, name, company_id FROM routes WHERE id = ?`, id).
		Scan(&rt.ID, &rt.Name, &rt.CompanyID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get route: %w", err)
	}

	points, err := r.GetRoutePoints(id)
	if err != nil {
		return nil, err
	}
	rt.Points = points
	return &rt, nil
}

// CreateRoutePoint adds a point to a route
func (r *RouteRepository) CreateRoutePoint(req models.CreateRoutePointRequest) (*models.RoutePoint, error) {
	res, err := r.db.Exec(`INSERT INTO route_points (route_id, lat, lng, seq, kind)
		VALUES (?, ?, ?, ?, ?)`,
		req.RouteID, req.Lat, req.Lng, req.Seq, req.Kind)
	if err != nil {
		return nil, fmt.Errorf("failed to create route point: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get route point id: %w", err)
	}

	return &models.RoutePoint{
		ID:      id,
		RouteID: req.RouteID,
		Lat:     req.Lat,
		Lng:     req.Lng,
		Seq:     req.Seq,
		Kind:    req.Kind,
	}, nil
}

// GetRoutePoints retrieves a route's points in sequence order
func (r *RouteRepository) GetRoutePoints(routeID int64) ([]models.RoutePoint, error) {
	rows, err := r.db.Query(`SELECT id, route_id, lat, lng, seq, kind
		FROM route_points WHERE route_id = ? ORDER BY seq ASC`, routeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query route points: %w", err)
	}
	defer rows.Close()

	var points []models.RoutePoint
	for rows.Next() {
		var p models.RoutePoint
		var kind sql.NullString
		if err := rows.Scan(&p.ID, &p.RouteID, &p.Lat, &p.Lng, &p.Seq, &kind); err != nil {
			return nil, fmt.Errorf("failed to scan route point: %w", err)
		}
		p.Kind = kind.String
		points = append(points, p)
	}

	return points, rows.Err()
}
