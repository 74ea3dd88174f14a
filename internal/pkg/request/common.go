package request

// ByIDRequest binds the :id path parameter of venue and hearing routes.
// Both resources use UUID keys, so anything else is rejected before the service is called.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
