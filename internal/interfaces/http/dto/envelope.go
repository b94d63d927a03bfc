// Package dto defines the wire envelope shared by every endpoint.
//
// Every response body is an Envelope; the HTTP status is 200 whenever the
// request reached the handler, and the Result code carries the outcome.
// Clients branch on Result, not on the status code.
package dto

// Result codes
const (
	// ResultSuccess indicates the operation succeeded and Data is usable
	ResultSuccess = 1
	// ResultFailure indicates the operation failed or matched nothing
	ResultFailure = 0
	// ResultLocked indicates the caller lacks the access right for the
	// operation. Clients treat it as "screen locked", not as an error.
	ResultLocked = -2
)

// Envelope is the uniform response body
type Envelope struct {
	Result       int         `json:"result"`
	Message      string      `json:"message,omitempty"`
	Data         interface{} `json:"data,omitempty"`
	TotalRecords *int64      `json:"totalRecords,omitempty"`
}

// Success builds a success envelope carrying a single payload
func Success(data interface{}) Envelope {
	return Envelope{Result: ResultSuccess, Data: data}
}

// SuccessList builds a success envelope carrying a page plus the
// unpaginated total record count.
func SuccessList(data interface{}, totalRecords int64) Envelope {
	return Envelope{Result: ResultSuccess, Data: data, TotalRecords: &totalRecords}
}

// SuccessMessage builds a success envelope with a message and no payload
func SuccessMessage(message string) Envelope {
	return Envelope{Result: ResultSuccess, Message: message}
}

// Failure builds a failure envelope with a message
func Failure(message string) Envelope {
	return Envelope{Result: ResultFailure, Message: message}
}

// Locked builds the access-locked envelope
func Locked() Envelope {
	return Envelope{Result: ResultLocked, Message: "Access is locked for this operation"}
}

// ListRequest binds the common list query parameters
type ListRequest struct {
	Search     string `form:"search" binding:"max=200"`
	SortBy     string `form:"sortBy" binding:"max=50"`
	SortOrder  string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
	PageNumber int    `form:"pageNumber" binding:"omitempty,min=1"`
	PageSize   int    `form:"pageSize" binding:"omitempty,min=1,max=200"`
}
