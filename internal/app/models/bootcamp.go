package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Careers a bootcamp may list. Closed set.
var ValidCareers = []string{
	"Web Development",
	"Mobile Development",
	"UI/UX",
	"Data Science",
	"Business",
	"Other",
}

// ValidCareerSet reports whether every entry belongs to the allowed set.
func ValidCareerSet(careers []string) bool {
	for _, c := range careers {
		found := false
		for _, v := range ValidCareers {
			if c == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Location is a resolved address stored as a GeoJSON point.
type Location struct {
	Type             string    `bson:"type" json:"type"`
	Coordinates      []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
	FormattedAddress string    `bson:"formattedAddress,omitempty" json:"formattedAddress,omitempty"`
	Street           string    `bson:"street,omitempty" json:"street,omitempty"`
	City             string    `bson:"city,omitempty" json:"city,omitempty"`
	State            string    `bson:"state,omitempty" json:"state,omitempty"`
	Zipcode          string    `bson:"zipcode,omitempty" json:"zipcode,omitempty"`
	Country          string    `bson:"country,omitempty" json:"country,omitempty"`
}

// Bootcamp is an organization in the directory. AverageCost and
// AverageRating are derived from its courses and reviews, never
// client-writable. Courses is a reverse relation resolved at read time and
// never persisted on the bootcamp document.
type Bootcamp struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Slug          string             `bson:"slug" json:"slug"`
	Description   string             `bson:"description" json:"description"`
	Website       string             `bson:"website,omitempty" json:"website,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Location      Location           `bson:"location" json:"location"`
	Careers       []string           `bson:"careers" json:"careers"`
	AverageRating *float64           `bson:"averageRating,omitempty" json:"averageRating,omitempty"`
	AverageCost   *int               `bson:"averageCost,omitempty" json:"averageCost,omitempty"`
	Photo         string             `bson:"photo" json:"photo"`
	Housing       bool               `bson:"housing" json:"housing"`
	JobAssistance bool               `bson:"jobAssistance" json:"jobAssistance"`
	JobGuarantee  bool               `bson:"jobGuarantee" json:"jobGuarantee"`
	AcceptGI      bool               `bson:"acceptGi" json:"acceptGi"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	User          primitive.ObjectID `bson:"user" json:"user"`
	Courses       []*Course          `bson:"-" json:"courses,omitempty"`
}

// DefaultPhoto is the placeholder photo filename for new bootcamps.
const DefaultPhoto = "no-photo.jpg"
