package model

import (
	"strings"
	"time"
)

// MatchRecord is one genetic match of the subject as exported by the DNA service.
type MatchRecord struct {
	ID                      string    `json:"id"`
	MatchID                 string    `json:"matchID"`
	Name                    string    `json:"name"`
	Age                     string    `json:"age"`
	Country                 string    `json:"country"`
	ContactURL              string    `json:"contactUrl"`
	ManagedByName           string    `json:"managedByName"`
	Status                  string    `json:"status"`
	PossibleRelationships   string    `json:"possibleRelationships"`
	TotalCMShared           float64   `json:"totalCmShared"`
	PercentDNAShared        float64   `json:"percentDnaShared"`
	SharedSegments          int       `json:"sharedSegments"`
	LargestSegmentCM        float64   `json:"largestSegmentCm"`
	HasFamilyTree           bool      `json:"hasFamilyTree"`
	IndividualsInTree       *int      `json:"individualsInTree"` // nil when the source text was not a number
	TreeManagedBy           string    `json:"treeManagedBy"`
	TreeURL                 string    `json:"treeUrl"`
	SharedAncestralSurnames string    `json:"sharedAncestralSurnames"`
	AllAncestralSurnames    string    `json:"allAncestralSurnames"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// Short projects the record onto the fields graph assembly needs. Surnames are
// split on commas and left unvalidated.
func (m MatchRecord) Short() ShortMatch {
	return ShortMatch{
		Name:             m.Name,
		Country:          m.Country,
		PercentDNAShared: m.PercentDNAShared,
		Surnames:         strings.Split(m.AllAncestralSurnames, ","),
	}
}

type ShortMatch struct {
	Name             string   `json:"name"`
	Country          string   `json:"country"`
	PercentDNAShared float64  `json:"percentDnaShared"`
	Surnames         []string `json:"surnames"`
}

type SurnameGroup struct {
	Surname string       `json:"surname"`
	Matches []ShortMatch `json:"matches"`
}

// MatchColumns are the match fields shown in a detail table, in display order.
var MatchColumns = []string{
	"name",
	"age",
	"country",
	"percentDnaShared",
	"individualsInTree",
	"allAncestralSurnames",
	"treeUrl",
}
