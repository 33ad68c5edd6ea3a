package request

// ByIDRequest is the common shape for endpoints taking a numeric ID path parameter.
type ByIDRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}
