// Package model holds the canonical in-flight records the QC engine
// consumes and produces: the PUID triple, SemanticObservation, and the
// QC outcome/event types emitted by check operators.
package model

import "time"

// ObservationType distinguishes numeric from categorical payloads.
type ObservationType string

const (
	Numerical   ObservationType = "Numerical"
	Categorical ObservationType = "Categorical"
)

// Outcome is the pass/fail verdict of a single check invocation.
type Outcome string

const (
	Pass Outcome = "pass"
	Fail Outcome = "fail"
)

// NotAValue is the wire-level sentinel a numeric observation carries in
// place of a value to signal a null observation. SemanticObservation
// has no custom JSON decoding: a numericValue holding this string fails
// to decode, and a null observation decodes only from an omitted or
// JSON-null numericValue, giving an absent NumericValue.
const NotAValue = "NotAValue"

// PUID is the (feature, procedure, observableproperty) triple that keys
// every registry lookup and every stream partition. It is immutable
// across the pipeline.
type PUID struct {
	Feature            string `json:"feature"`
	Procedure          string `json:"procedure"`
	ObservableProperty string `json:"observableproperty"`
}

// String renders the triple using the registry's "::" key separator,
// the same join used for compound registry keys.
func (p PUID) String() string {
	return p.Feature + "::" + p.Procedure + "::" + p.ObservableProperty
}

// SemanticObservation is the canonical record flowing through the
// engine. It is created once by the (out-of-scope) raw-to-semantic
// transform and is immutable thereafter.
type SemanticObservation struct {
	PUID

	PhenomenonTimeStart int64 `json:"phenomenonTimeStart"` // epoch ms, UTC
	PhenomenonTimeEnd   int64 `json:"phenomenonTimeEnd"`   // epoch ms, UTC

	ObservationType ObservationType `json:"observationType"`
	NumericValue    *float64        `json:"numericValue,omitempty"`
	CategoricValue  *string         `json:"categoricValue,omitempty"`

	Quality    int    `json:"quality"`
	Accuracy   int    `json:"accuracy"`
	Status     string `json:"status"`
	Processing string `json:"processing"`
	Uncertml   string `json:"uncertml"`
	Comment    string `json:"comment"`
	Location   string `json:"location"`
	Parameters string `json:"parameters"`
}

// Year returns the calendar year of PhenomenonTimeStart, UTC.
func (o SemanticObservation) Year() int {
	return time.UnixMilli(o.PhenomenonTimeStart).UTC().Year()
}

// Month returns the calendar month (1-12) of PhenomenonTimeStart, UTC.
func (o SemanticObservation) Month() int {
	return int(time.UnixMilli(o.PhenomenonTimeStart).UTC().Month())
}

// IsNull reports whether this is a numeric observation with an absent
// value — it participates in null checks but must be skipped by any
// numeric check.
func (o SemanticObservation) IsNull() bool {
	return o.ObservationType == Numerical && o.NumericValue == nil
}

// Instant is the canonical instant a check resolves thresholds against:
// the start of the observed interval.
func (o SemanticObservation) Instant() time.Time {
	return time.UnixMilli(o.PhenomenonTimeStart).UTC()
}

// QCOutcomeQuantitative is the per-observation quantitative pass/fail
// record against a specific test.
type QCOutcomeQuantitative struct {
	PUID
	Instant           int64   `json:"instant"` // epoch ms, UTC
	TestID            string  `json:"testId"`
	Outcome           Outcome `json:"outcome"`
	QuantitativeValue float64 `json:"quantitativeValue"`
}

// QCEvent is a window-scoped anomaly record not attributable to a
// single observation.
type QCEvent struct {
	PUID
	EventDescription string `json:"eventDescription"`
	WindowStart      int64  `json:"windowStart"` // epoch ms, UTC
	WindowEnd        int64  `json:"windowEnd"`   // epoch ms, UTC
}
