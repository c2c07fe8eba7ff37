package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SkillLevel is the minimum skill a course expects.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// Valid reports whether the skill level is in the allowed set.
func (s SkillLevel) Valid() bool {
	return s == SkillBeginner || s == SkillIntermediate || s == SkillAdvanced
}

// Course belongs to exactly one bootcamp. Creating or removing a course
// recomputes the bootcamp's average cost.
type Course struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title                string             `bson:"title" json:"title"`
	Description          string             `bson:"description" json:"description"`
	Weeks                string             `bson:"weeks" json:"weeks"`
	Tuition              float64            `bson:"tuition" json:"tuition"`
	MinimumSkill         SkillLevel         `bson:"minimumSkill" json:"minimumSkill"`
	ScholarshipAvailable bool               `bson:"scholarshipAvailable" json:"scholarshipAvailable"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	Bootcamp             primitive.ObjectID `bson:"bootcamp" json:"bootcamp"`
	User                 primitive.ObjectID `bson:"user" json:"user"`
}
