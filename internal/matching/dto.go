// internal/matching/dto.go
package matching

// DTOs for API requests/responses

// DiscoveryParams controls feed filtering and pagination
type DiscoveryParams struct {
	SportID    *int64 `json:"sport_id,omitempty"`
	PageSize   int    `json:"page_size"`
	PageNumber int    `json:"page_number"`
}

// normalized clamps pagination to the allowed range
func (p *DiscoveryParams) normalized() *DiscoveryParams {
	out := DiscoveryParams{PageSize: DefaultPageSize, PageNumber: 1}
	if p != nil {
		out.SportID = p.SportID
		if p.PageSize > 0 {
			out.PageSize = p.PageSize
		}
		if p.PageNumber > 1 {
			out.PageNumber = p.PageNumber
		}
	}
	if out.PageSize > MaxPageSize {
		out.PageSize = MaxPageSize
	}
	return &out
}

// SwipeRequest is the body of POST /swipes
type SwipeRequest struct {
	LikedUserID int64 `json:"liked_user_id" validate:"required,gt=0"`
}
