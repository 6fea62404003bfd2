package scheduler

//ListRequest represents a scheduled transfer list request
type ListRequest struct{}

//ListResponse represents a scheduled transfer list response
type ListResponse struct {
	Items []*Schedulable
}
