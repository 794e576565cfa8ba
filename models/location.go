package models

// LocationSample is a single stored GPS fix
// Timestamp is milliseconds since the Unix epoch
type LocationSample struct {
	ID        string  `json:"-" db:"id"`
	UserID    string  `json:"userId" db:"user_id"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
	Timestamp int64   `json:"timestamp" db:"recorded_at"`
}

// LocationInput is a sample as submitted by a client.
// Pointers distinguish "absent" from zero coordinates.
// UserID is accepted for compatibility with older clients and always overwritten.
type LocationInput struct {
	UserID    string   `json:"userId,omitempty"`
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
	Timestamp *int64   `json:"timestamp,omitempty" validate:"omitempty,gte=0"`
}

// UploadLocationsRequest is the body of POST /api/locations/upload
type UploadLocationsRequest struct {
	Locations []LocationInput `json:"locations"`
}

// SaveLocationsResponse reports how many samples were appended
type SaveLocationsResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}
