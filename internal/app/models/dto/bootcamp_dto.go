package dto

// CreateBootcampRequest creates a bootcamp. The address is resolved through
// the geocoder and never stored in its raw form.
type CreateBootcampRequest struct {
	Name          string   `json:"name" binding:"required,max=50"`
	Description   string   `json:"description" binding:"required,max=500"`
	Website       string   `json:"website" binding:"omitempty,url"`
	Phone         string   `json:"phone" binding:"omitempty,max=20"`
	Email         string   `json:"email" binding:"omitempty,email"`
	Address       string   `json:"address" binding:"required"`
	Careers       []string `json:"careers" binding:"required,min=1"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	JobGuarantee  bool     `json:"jobGuarantee"`
	AcceptGI      bool     `json:"acceptGi"`
}

// UpdateBootcampRequest partially updates a bootcamp. Nil fields are left
// untouched; the owning account and derived fields are not updatable.
type UpdateBootcampRequest struct {
	Name          *string   `json:"name" binding:"omitempty,max=50"`
	Description   *string   `json:"description" binding:"omitempty,max=500"`
	Website       *string   `json:"website" binding:"omitempty,url"`
	Phone         *string   `json:"phone" binding:"omitempty,max=20"`
	Email         *string   `json:"email" binding:"omitempty,email"`
	Address       *string   `json:"address"`
	Careers       []string  `json:"careers" binding:"omitempty,min=1"`
	Housing       *bool     `json:"housing"`
	JobAssistance *bool     `json:"jobAssistance"`
	JobGuarantee  *bool     `json:"jobGuarantee"`
	AcceptGI      *bool     `json:"acceptGi"`
}
