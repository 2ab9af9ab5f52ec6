package holidayapi

import "fmt"

// Holiday represents a single holiday entry returned by the service
type Holiday struct {
	Name     string `json:"name"`
	Date     string `json:"date"`     // Nominal date, YYYY-MM-DD
	Observed string `json:"observed"` // Date the holiday is actually observed, YYYY-MM-DD
	Public   bool   `json:"public"`
}

// holidaysResponse represents the API response envelope.
// On success Holidays maps date strings to entry lists; on failure the
// service fills Status and Error instead.
type holidaysResponse struct {
	Status   int                  `json:"status"`
	Error    string               `json:"error"`
	Holidays map[string][]Holiday `json:"holidays"`
}

// ServiceError represents a structured error payload returned by the service
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// StatusError represents a failing HTTP status with no structured error body
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("holiday API returned status %d", e.Code)
}
