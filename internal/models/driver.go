package models

// Driver statuses used by the mobile clients
const (
	DriverStatusAvailable = "available"
	DriverStatusOnline    = "online"
	DriverStatusOffline   = "offline"
)

// Car is the vehicle assigned to a driver
type Car struct {
	ID           int64  `json:"id" db:"id"`
	LicensePlate string `json:"licensePlate" db:"license_plate"`
	Model        string `json:"model" db:"model"`
	Observations string `json:"observations,omitempty" db:"observations"`
}

// RouteRef is the route summary embedded in driver responses
type RouteRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Driver is the joined driver shape returned by the API
type Driver struct {
	ID      int64     `json:"id" db:"id"`
	UserID  int64     `json:"userId" db:"user_id"`
	Name    string    `json:"name"`
	Photo   string    `json:"photo,omitempty"`
	License string    `json:"license" db:"license"`
	Lat     float64   `json:"lat" db:"lat"`
	Lng     float64   `json:"lng" db:"lng"`
	Status  string    `json:"status" db:"status"`
	Route   *RouteRef `json:"route,omitempty"`
	Car     *Car      `json:"car,omitempty"`
}

// CreateDriverRequest creates a user, a car and a driver in one call
type CreateDriverRequest struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	License         string  `json:"license"`
	RouteID         *int64  `json:"route_id"`
	Lat             float64 `json:"lat"`
	Lng             float64 `json:"lng"`
	Status          string  `json:"status"`
	CarLicensePlate string  `json:"car_license_plate"`
	CarModel        string  `json:"car_model"`
	CarObservations string  `json:"car_observations"`
	CompanyID       *int64  `json:"company_id"`
}

// DriverLocationUpdate carries a PATCH of the driver's live position
type DriverLocationUpdate struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// DriverStatusUpdate carries a PATCH of the driver's availability
type DriverStatusUpdate struct {
	Status string `json:"status"`
}
