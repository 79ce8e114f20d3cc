package errors

// Error represents an API error
// @Description Standardized API error response
type Error struct {
	Message string `json:"message" example:"Specified base version not known"`
	Error   int    `json:"error" example:"417"`
}
