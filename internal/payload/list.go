package payload

// Pagination for admin list endpoints.
type (
	// ListReqQuery carries the paging parameters (bound from the query
	// string). Pointers so that page_index=0 passes the required check.
	ListReqQuery struct {
		PageIndex *int `form:"page_index" binding:"required"`
		PageSize  *int `form:"page_size" binding:"required"`
	}
	ListResp[T any] struct {
		Rows  []T   `json:"rows"`
		Count int64 `json:"count"`
	}
)
