// v0
// golden_test.go
//
// Pins the wire JSON shape of QCOutcomeQuantitative, since downstream
// kafka consumers (outside this module) parse it by field name.
package model

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

func TestQCOutcomeQuantitativeJSONShape(t *testing.T) {
	o := QCOutcomeQuantitative{
		PUID:              PUID{Feature: "river-avon-01", Procedure: "sensor-42", ObservableProperty: "water-temperature"},
		Instant:           1_000_000,
		TestID:            "http://placeholder.catalogue.ceh.ac.uk/qc/range/m1/max",
		Outcome:           Fail,
		QuantitativeValue: 20,
	}
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	g.Assert(t, "qc_outcome_quantitative", b)
}
