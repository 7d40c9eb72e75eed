package internal

// User is the authenticated caller, resolved from a bearer token by the
// auth provider.
type User struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
}

// TimeEntry is a block of hours billed against a client on a given day.
// The ID is assigned once at registration as "{clientId}-{epochMillis}"
// and never changes. Date is the day the work happened (an ISO date
// string), not when the record was written.
type TimeEntry struct {
	ID       string  `json:"entry_id"`
	ClientID string  `json:"client_id"`
	UserID   string  `json:"user_id"`
	Date     string  `json:"date"`
	Duration float64 `json:"duration"` // hours
}

// SentinelDate marks the placeholder entry inserted when a client is
// created before any hours are logged against it.
const SentinelDate = "2020-01-01"

// AppError is the error shape carried through the API envelope. Code is
// the HTTP status the handler should answer with.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}
