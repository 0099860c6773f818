package dto

import "github.com/google/uuid"

type FamilyMemberResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Relationship string    `json:"relationship"`
	PhotoURL     string    `json:"photo_url,omitempty"`
}

type CreateFamilyMemberResponse struct {
	MemberID    uuid.UUID `json:"member_id"`
	Name        string    `json:"name"`
	PhotosSaved int       `json:"photos_saved"`
}
