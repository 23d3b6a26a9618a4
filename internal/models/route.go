package models

// Route is a named service route operated by a company
type Route struct {
	ID        int64        `json:"id" db:"id"`
	Name      string       `json:"name" db:"name"`
	CompanyID *int64       `json:"companyId,omitempty" db:"company_id"`
	Points    []RoutePoint `json:"points,omitempty"`
}

// RoutePoint is one ordered stop or waypoint on a route
type RoutePoint struct {
	ID      int64   `json:"id" db:"id"`
	RouteID int64   `json:"routeId" db:"route_id"`
	Lat     float64 `json:"lat" db:"lat"`
	Lng     float64 `json:"lng" db:"lng"`
	Seq     int     `json:"seq" db:"seq"`
	Kind    string  `json:"kind,omitempty" db:"kind"`
}

// CreateRouteRequest creates a route
type CreateRouteRequest struct {
	Name      string `json:"name"`
	CompanyID *int64 `json:"companyId"`
}

// CreateRoutePointRequest adds a point to a route
type CreateRoutePointRequest struct {
	RouteID int64   `json:"routeId"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Seq     int     `json:"seq"`
	Kind    string  `json:"kind"`
}
