package dto

// CreateCourseRequest adds a course to a bootcamp.
type CreateCourseRequest struct {
	Title                string  `json:"title" binding:"required"`
	Description          string  `json:"description" binding:"required"`
	Weeks                string  `json:"weeks" binding:"required"`
	Tuition              float64 `json:"tuition" binding:"required,gt=0"`
	MinimumSkill         string  `json:"minimumSkill" binding:"required,oneof=beginner intermediate advanced"`
	ScholarshipAvailable bool    `json:"scholarshipAvailable"`
}

// UpdateCourseRequest partially updates a course. The owning bootcamp and
// account references are immutable.
type UpdateCourseRequest struct {
	Title                *string  `json:"title"`
	Description          *string  `json:"description"`
	Weeks                *string  `json:"weeks"`
	Tuition              *float64 `json:"tuition" binding:"omitempty,gt=0"`
	MinimumSkill         *string  `json:"minimumSkill" binding:"omitempty,oneof=beginner intermediate advanced"`
	ScholarshipAvailable *bool    `json:"scholarshipAvailable"`
}
