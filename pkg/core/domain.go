// Record is the central entity of the domain.
package core

import (
	"fmt"
	"sort"
)

// ParticipantIDField is the reserved field name keying the masterfile.
const ParticipantIDField = "participant_id"

// Record represents one participant's merged survey data.
// Field order is first-insertion order; setting an existing key replaces
// the value but keeps its original position (last-write-wins).
type Record struct {
	ParticipantID string

	fields map[string]string
	order  []string
}

// NewRecord creates an empty record for the given participant.
func NewRecord(participantID string) *Record {
	return &Record{
		ParticipantID: participantID,
		fields:        make(map[string]string),
	}
}

// Set inserts or replaces a field value.
func (r *Record) Set(key, value string) {
	if _, ok := r.fields[key]; !ok {
		r.order = append(r.order, key)
	}
	r.fields[key] = value
}

// Get returns a field value and whether it exists.
func (r *Record) Get(key string) (string, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// Len returns the number of fields (excluding the participant id).
func (r *Record) Len() int {
	return len(r.fields)
}

// Keys returns the field names in first-insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// SortedKeys returns the field names in lexicographic order.
// The workbook backend writes columns in this order.
func (r *Record) SortedKeys() []string {
	keys := r.Keys()
	sort.Strings(keys)
	return keys
}

// QuestionnaireSpec describes one questionnaire type for folder generation:
// a logical survey name, the template file to copy, and how many copies.
type QuestionnaireSpec struct {
	Index        int    `json:"index" yaml:"index"`
	Name         string `json:"name" yaml:"name"`
	TemplatePath string `json:"template_path" yaml:"template_path"`
	CopyCount    int    `json:"copy_count" yaml:"copy_count"`
}

// SurveyName returns the configured name, or the positional default
// when the form left it blank.
func (q QuestionnaireSpec) SurveyName() string {
	if q.Name != "" {
		return q.Name
	}
	return fmt.Sprintf("survey_%d", q.Index+1)
}

// Copies returns the copy count, treating anything below 1 as a single copy.
func (q QuestionnaireSpec) Copies() int {
	if q.CopyCount < 1 {
		return 1
	}
	return q.CopyCount
}

// CompletenessReport is the result of checking a participant folder
// for expected extract files. No content validation is performed.
type CompletenessReport struct {
	ParticipantID string
	Complete      bool
	Files         []string
	Issues        []string
}

// FolderStatus is one row of a missing-data report.
type FolderStatus struct {
	ParticipantID string
	Complete      bool
	Files         []string
	Issues        []string
}

// MissingDataReport summarizes completeness across every participant
// folder under the source root.
type MissingDataReport struct {
	Statuses   []FolderStatus
	Complete   int
	Incomplete int
}

// BatchResult collects per-id outcomes of a sequential batch run.
// One participant's failure never aborts the remaining batch.
type BatchResult struct {
	RunID      string
	Requested  int
	Succeeded  []string
	Duplicates []string
	Incomplete []string
	Failed     []string
}

// EventType represents the type of change under the source root.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a participant's extract files.
type Event struct {
	Type          EventType
	ParticipantID string
	File          string
	Timestamp     int64 // Unix timestamp
}

// String implements fmt.Stringer (and lifecycle.Event).
func (e Event) String() string {
	return fmt.Sprintf("%s %s/%s", e.Type, e.ParticipantID, e.File)
}
