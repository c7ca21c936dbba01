// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the grant-meter pipeline:
// the canonical opportunity record every feed maps into, and the per-stage
// configuration structs.
package types

import (
	"sort"
	"strconv"
	"strings"
)

// Attributes lists every canonical field in the order it appears in CSV
// output. Feeds populate the subset they can supply; the rest stay empty.
var Attributes = []string{
	"Similarity",
	"Title",
	"DueDates",
	"Posted",
	"ModifiedDate",
	"CloseDate",
	"Sponsor",
	"SponsorType",
	"Feed",
	"FeedID",
	"ProgramID",
	"AwardType",
	"Eligibility",
	"ApplicantLocation",
	"ApplicantType",
	"CitizenshipReq",
	"ActivityLocation",
	"Status",
	"Amount",
	"MaxAmount",
	"MinAmount",
	"MaxNumAwards",
	"MinNumAwards",
	"SubmissionDetails",
	"LimitedSubmissionInfo",
	"SubmissionRequirements",
	"CostSharing",
	"RollingDecision",
	"Categories",
	"CFDA",
	"Contacts",
	"URL",
	"SolicitationURL",
	"Description",
	"Duration",
	"EarlyCareer",
	"Authors",
	"Prompt",
	"QueryName",
}

// Record is the canonical schema every raw feed row is normalized into.
// Every field is optional: a feed that cannot supply a field leaves it
// empty. Dates are MM/DD/YYYY strings after normalization.
type Record struct {
	// Similarity is the cosine similarity to the query prompt, in [-1, 1].
	// Attached exactly once, at materialization time.
	Similarity float64 `json:"similarity" yaml:"similarity"`

	// Title identifies the opportunity or paper. The only field a feed
	// row must supply; rows without one are skipped.
	Title string `json:"title" yaml:"title"`

	// DueDates maps a deadline label (e.g. "InternalLOI", "Deadline_0")
	// to a date string. Feeds with a single close date populate a
	// one-entry map.
	DueDates map[string]string `json:"due_dates,omitempty" yaml:"due_dates,omitempty"`

	Posted       string `json:"posted,omitempty" yaml:"posted,omitempty"`
	ModifiedDate string `json:"modified_date,omitempty" yaml:"modified_date,omitempty"`

	// CloseDate is the normalized final deadline, MM/DD/YYYY. Empty when
	// the feed has no usable deadline; the recency filter drops such
	// records only when a filter is active.
	CloseDate string `json:"close_date,omitempty" yaml:"close_date,omitempty"`

	Sponsor     string `json:"sponsor,omitempty" yaml:"sponsor,omitempty"`
	SponsorType string `json:"sponsor_type,omitempty" yaml:"sponsor_type,omitempty"`

	// Feed names the source feed (e.g. "NSF", "Grants.gov"). Exactly one
	// per record; set at materialization.
	Feed string `json:"feed" yaml:"feed"`

	// FeedID is the feed's own identifier for this record.
	FeedID    string `json:"feed_id,omitempty" yaml:"feed_id,omitempty"`
	ProgramID string `json:"program_id,omitempty" yaml:"program_id,omitempty"`

	AwardType         string `json:"award_type,omitempty" yaml:"award_type,omitempty"`
	Eligibility       string `json:"eligibility,omitempty" yaml:"eligibility,omitempty"`
	ApplicantLocation string `json:"applicant_location,omitempty" yaml:"applicant_location,omitempty"`
	ApplicantType     string `json:"applicant_type,omitempty" yaml:"applicant_type,omitempty"`
	CitizenshipReq    string `json:"citizenship_req,omitempty" yaml:"citizenship_req,omitempty"`
	ActivityLocation  string `json:"activity_location,omitempty" yaml:"activity_location,omitempty"`
	Status            string `json:"status,omitempty" yaml:"status,omitempty"`

	Amount       string `json:"amount,omitempty" yaml:"amount,omitempty"`
	MaxAmount    string `json:"max_amount,omitempty" yaml:"max_amount,omitempty"`
	MinAmount    string `json:"min_amount,omitempty" yaml:"min_amount,omitempty"`
	MaxNumAwards string `json:"max_num_awards,omitempty" yaml:"max_num_awards,omitempty"`
	MinNumAwards string `json:"min_num_awards,omitempty" yaml:"min_num_awards,omitempty"`

	SubmissionDetails      string `json:"submission_details,omitempty" yaml:"submission_details,omitempty"`
	LimitedSubmissionInfo  string `json:"limited_submission_info,omitempty" yaml:"limited_submission_info,omitempty"`
	SubmissionRequirements string `json:"submission_requirements,omitempty" yaml:"submission_requirements,omitempty"`
	CostSharing            string `json:"cost_sharing,omitempty" yaml:"cost_sharing,omitempty"`
	RollingDecision        string `json:"rolling_decision,omitempty" yaml:"rolling_decision,omitempty"`

	Categories string `json:"categories,omitempty" yaml:"categories,omitempty"`
	CFDA       string `json:"cfda,omitempty" yaml:"cfda,omitempty"`

	// Contacts maps a contact field label (Name, Email, Phone, ...) to
	// its value.
	Contacts map[string]string `json:"contacts,omitempty" yaml:"contacts,omitempty"`

	URL             string `json:"url,omitempty" yaml:"url,omitempty"`
	SolicitationURL string `json:"solicitation_url,omitempty" yaml:"solicitation_url,omitempty"`

	// Description is the free text the embedding was computed from.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Duration    string `json:"duration,omitempty" yaml:"duration,omitempty"`
	EarlyCareer string `json:"early_career,omitempty" yaml:"early_career,omitempty"`
	Authors     string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Prompt and QueryName are stamped on export so a results CSV that
	// accumulates multiple queries stays self-describing.
	Prompt    string `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	QueryName string `json:"query_name,omitempty" yaml:"query_name,omitempty"`
}

// Field returns the named canonical attribute as a string, with DueDates
// and Contacts rendered as single cells. Unknown names return "".
func (r *Record) Field(name string) string {
	switch name {
	case "Similarity":
		return formatFloat(r.Similarity)
	case "Title":
		return r.Title
	case "DueDates":
		return formatMap(r.DueDates)
	case "Posted":
		return r.Posted
	case "ModifiedDate":
		return r.ModifiedDate
	case "CloseDate":
		return r.CloseDate
	case "Sponsor":
		return r.Sponsor
	case "SponsorType":
		return r.SponsorType
	case "Feed":
		return r.Feed
	case "FeedID":
		return r.FeedID
	case "ProgramID":
		return r.ProgramID
	case "AwardType":
		return r.AwardType
	case "Eligibility":
		return r.Eligibility
	case "ApplicantLocation":
		return r.ApplicantLocation
	case "ApplicantType":
		return r.ApplicantType
	case "CitizenshipReq":
		return r.CitizenshipReq
	case "ActivityLocation":
		return r.ActivityLocation
	case "Status":
		return r.Status
	case "Amount":
		return r.Amount
	case "MaxAmount":
		return r.MaxAmount
	case "MinAmount":
		return r.MinAmount
	case "MaxNumAwards":
		return r.MaxNumAwards
	case "MinNumAwards":
		return r.MinNumAwards
	case "SubmissionDetails":
		return r.SubmissionDetails
	case "LimitedSubmissionInfo":
		return r.LimitedSubmissionInfo
	case "SubmissionRequirements":
		return r.SubmissionRequirements
	case "CostSharing":
		return r.CostSharing
	case "RollingDecision":
		return r.RollingDecision
	case "Categories":
		return r.Categories
	case "CFDA":
		return r.CFDA
	case "Contacts":
		return formatMap(r.Contacts)
	case "URL":
		return r.URL
	case "SolicitationURL":
		return r.SolicitationURL
	case "Description":
		return r.Description
	case "Duration":
		return r.Duration
	case "EarlyCareer":
		return r.EarlyCareer
	case "Authors":
		return r.Authors
	case "Prompt":
		return r.Prompt
	case "QueryName":
		return r.QueryName
	}
	return ""
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// formatMap renders a label→value map as "k1: v1; k2: v2" with keys
// sorted, so exported cells are stable across runs.
func formatMap(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(m[k])
	}
	return b.String()
}
