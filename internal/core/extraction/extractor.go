package extraction

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/agenthands/kinship/internal/core/model"
	"github.com/google/uuid"
)

var ErrMissingColumn = errors.New("missing required column")

// Text is a raw export value. Exports write numeric columns either as JSON
// numbers or as strings, so both decode to their literal text.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	*t = Text(data)
	return nil
}

// RawMatch is one row of the DNA match export, keyed by the export's column names.
type RawMatch struct {
	MatchID                 Text `json:"DNA Match ID"`
	Name                    Text `json:"Name"`
	Age                     Text `json:"Age"`
	Country                 Text `json:"Country"`
	ContactURL              Text `json:"Contact DNA Manager"`
	ManagedBy               Text `json:"DNA managed by"`
	Status                  Text `json:"Status"`
	PossibleRelationships   Text `json:"Possible relationships"`
	TotalCMShared           Text `json:"Total cM shared"`
	PercentDNAShared        Text `json:"Percent DNA shared"`
	SharedSegments          Text `json:"Number of shared segments"`
	LargestSegmentCM        Text `json:"Largest segment (cM)"`
	HasFamilyTree           Text `json:"Has family tree"`
	IndividualsInTree       Text `json:"Number of individuals in the tree"`
	TreeManagedBy           Text `json:"Tree managed by"`
	TreeURL                 Text `json:"View tree"`
	SharedAncestralSurnames Text `json:"Shared Ancestral Surnames"`
	AllAncestralSurnames    Text `json:"All ancestral surnames"`
}

// columns maps export headers to RawMatch fields for CSV input.
var columns = map[string]func(*RawMatch) *Text{
	"DNA Match ID":                      func(r *RawMatch) *Text { return &r.MatchID },
	"Name":                              func(r *RawMatch) *Text { return &r.Name },
	"Age":                               func(r *RawMatch) *Text { return &r.Age },
	"Country":                           func(r *RawMatch) *Text { return &r.Country },
	"Contact DNA Manager":               func(r *RawMatch) *Text { return &r.ContactURL },
	"DNA managed by":                    func(r *RawMatch) *Text { return &r.ManagedBy },
	"Status":                            func(r *RawMatch) *Text { return &r.Status },
	"Possible relationships":            func(r *RawMatch) *Text { return &r.PossibleRelationships },
	"Total cM shared":                   func(r *RawMatch) *Text { return &r.TotalCMShared },
	"Percent DNA shared":                func(r *RawMatch) *Text { return &r.PercentDNAShared },
	"Number of shared segments":         func(r *RawMatch) *Text { return &r.SharedSegments },
	"Largest segment (cM)":              func(r *RawMatch) *Text { return &r.LargestSegmentCM },
	"Has family tree":                   func(r *RawMatch) *Text { return &r.HasFamilyTree },
	"Number of individuals in the tree": func(r *RawMatch) *Text { return &r.IndividualsInTree },
	"Tree managed by":                   func(r *RawMatch) *Text { return &r.TreeManagedBy },
	"View tree":                         func(r *RawMatch) *Text { return &r.TreeURL },
	"Shared Ancestral Surnames":         func(r *RawMatch) *Text { return &r.SharedAncestralSurnames },
	"All ancestral surnames":            func(r *RawMatch) *Text { return &r.AllAncestralSurnames },
}

var requiredColumns = []string{"Name", "All ancestral surnames"}

type Extractor struct {
	Now   func() time.Time
	NewID func() string
}

func NewExtractor() *Extractor {
	return &Extractor{
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}

// ReadJSON decodes an export written as a JSON array of rows.
func (e *Extractor) ReadJSON(r io.Reader) ([]RawMatch, error) {
	var rows []RawMatch
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode matches: %w", err)
	}
	return rows, nil
}

// ReadCSV decodes an export with a header row. Columns are addressed by
// header name; unknown columns are ignored.
func (e *Extractor) ReadCSV(r io.Reader) ([]RawMatch, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	present := make(map[string]bool, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		header[i] = h
		present[h] = true
	}
	for _, c := range requiredColumns {
		if !present[c] {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}

	var rows []RawMatch
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(rows)+1, err)
		}

		var row RawMatch
		for i, value := range record {
			if i >= len(header) {
				break
			}
			if field, ok := columns[header[i]]; ok {
				*field(&row) = Text(value)
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// ToRecord converts a raw row into a MatchRecord. Malformed numbers never
// fail the conversion: measurements fall back to zero and the tree size to nil.
func (e *Extractor) ToRecord(raw RawMatch) model.MatchRecord {
	now := e.Now()
	return model.MatchRecord{
		ID:                      e.NewID(),
		MatchID:                 string(raw.MatchID),
		Name:                    string(raw.Name),
		Age:                     string(raw.Age),
		Country:                 string(raw.Country),
		ContactURL:              string(raw.ContactURL),
		ManagedByName:           string(raw.ManagedBy),
		Status:                  string(raw.Status),
		PossibleRelationships:   string(raw.PossibleRelationships),
		TotalCMShared:           parseFloat(raw.TotalCMShared),
		PercentDNAShared:        parseFloat(raw.PercentDNAShared),
		SharedSegments:          parseInt(raw.SharedSegments),
		LargestSegmentCM:        parseFloat(raw.LargestSegmentCM),
		HasFamilyTree:           raw.HasFamilyTree == "Yes",
		IndividualsInTree:       parseCount(raw.IndividualsInTree),
		TreeManagedBy:           string(raw.TreeManagedBy),
		TreeURL:                 string(raw.TreeURL),
		SharedAncestralSurnames: string(raw.SharedAncestralSurnames),
		AllAncestralSurnames:    string(raw.AllAncestralSurnames),
		CreatedAt:               now,
		UpdatedAt:               now,
	}
}

func (e *Extractor) ToRecords(raws []RawMatch) []model.MatchRecord {
	records := make([]model.MatchRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, e.ToRecord(raw))
	}
	return records
}

func parseFloat(t Text) float64 {
	s := strings.TrimSuffix(strings.TrimSpace(string(t)), "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseInt truncates a measurement to an int; values outside the int32 range
// are treated as malformed.
func parseInt(t Text) int {
	v := parseFloat(t)
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0
	}
	return int(v)
}

func parseCount(t Text) *int {
	s := strings.TrimSpace(string(t))
	if s == "" {
		// an empty cell is a tree with no individuals
		n := 0
		return &n
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
