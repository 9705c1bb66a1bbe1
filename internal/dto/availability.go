package dto

// CheckCapacityResponse reports whether a candidate party fits the branch's
// capacity ceiling for the hour bucket containing the requested start.
// Max is nil when the branch has no ceiling configured.
type CheckCapacityResponse struct {
	Allowed bool `json:"allowed"`
	Current int  `json:"current"`
	Max     *int `json:"max"`
}
