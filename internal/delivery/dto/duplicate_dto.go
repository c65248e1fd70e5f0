package dto

// Response DTOs for the duplicate-patient inspection endpoint.

type DuplicateGroupResponse struct {
	NormalizedName string            `json:"normalized_name"`
	Members        []PatientResponse `json:"members"`
}

type DuplicateGroupListResponse struct {
	Groups []DuplicateGroupResponse `json:"groups"`
	Total  int                      `json:"total"`
}
