package store

import (
	"testing"
)

func TestBatchFilterDefaults(t *testing.T) {
	f := BatchFilter{}
	if f.Limit != 0 {
		t.Errorf("expected 0 default limit, got %d", f.Limit)
	}
	if f.Sample != "" || f.Algorithm != "" || f.Channel != "" {
		t.Error("expected empty string filters")
	}
}

func TestBatchRecordFields(t *testing.T) {
	b := BatchRecord{
		Sample:     "ttbar_semilep",
		Algorithm:  "csvm",
		Channel:    "muon",
		HeavyShift: "nominal",
		LightShift: "up",
	}
	if b.Sample == "" {
		t.Error("expected sample to be set")
	}
	if b.HeavyShift == b.LightShift {
		t.Error("expected independent shift fields")
	}
}
