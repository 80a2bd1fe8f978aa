package dto

import "churchthreads.app/api/internal/model"

type OrganizationResponse struct {
	ID       int64   `json:"id,string"`
	Name     string  `json:"name"`
	Location *string `json:"location,omitempty"`
	Host     string  `json:"host"`
}

func ToOrganizationResponse(org *model.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:       org.ID,
		Name:     org.Name,
		Location: org.Location,
		Host:     org.Host,
	}
}
