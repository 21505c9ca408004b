// seed_batches.go — standalone script to generate toy samples and seed batches via the btagweight API.
//
// Usage:
//
//	go run scripts/seed_batches.go -api http://localhost:8700 -events 200
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
)

type jet struct {
	Flavor string  `json:"flavor"`
	PT     float64 `json:"pt"`
	Tagged bool    `json:"tagged"`
}

type batchRequest struct {
	Sample    string  `json:"sample"`
	Algorithm string  `json:"algorithm,omitempty"`
	Channel   string  `json:"channel,omitempty"`
	Events    [][]jet `json:"events"`
}

// Rough medium working point tagging rates, good enough for seed data.
var tagRate = map[string]float64{"b": 0.70, "c": 0.20, "light": 0.02}

type sampleSpec struct {
	name    string
	minJets int
	maxJets int
	bFrac   float64
	cFrac   float64
}

var samples = []sampleSpec{
	{"ttbar_semilep", 3, 5, 0.45, 0.10},
	{"wjets", 1, 3, 0.02, 0.08},
	{"zjets", 1, 3, 0.05, 0.10},
	{"single_top", 2, 4, 0.35, 0.08},
}

func main() {
	apiURL := flag.String("api", "http://localhost:8700", "btagweight API base URL")
	events := flag.Int("events", 200, "events per sample")
	algorithm := flag.String("algorithm", "csvm", "tagging algorithm")
	channel := flag.String("channel", "muon", "lepton channel")
	seed := flag.Int64("seed", 1, "random seed")
	dryRun := flag.Bool("dry-run", false, "print batch sizes without posting")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	client := &http.Client{}
	created, skipped := 0, 0
	for _, spec := range samples {
		evs := generate(rng, spec, *events)

		if *dryRun {
			jets := 0
			for _, ev := range evs {
				jets += len(ev)
			}
			fmt.Printf("%s: %d events, %d jets\n", spec.name, len(evs), jets)
			continue
		}

		body, _ := json.Marshal(batchRequest{
			Sample:    spec.name,
			Algorithm: *algorithm,
			Channel:   *channel,
			Events:    evs,
		})
		resp, err := client.Post(*apiURL+"/api/v1/batches", "application/json", bytes.NewReader(body))
		if err != nil {
			log.Printf("skip %s: %v", spec.name, err)
			skipped++
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusCreated {
			log.Printf("seeded %s: %d events", spec.name, len(evs))
			created++
		} else {
			log.Printf("skip %s: status %d", spec.name, resp.StatusCode)
			skipped++
		}
	}

	log.Printf("done: %d created, %d skipped", created, skipped)
}

// generate draws one toy sample: jet multiplicity uniform in the spec
// range, pt from a falling spectrum starting at the 20 GeV selection
// cut, and tag decisions from the rough per-flavor rates.
func generate(rng *rand.Rand, spec sampleSpec, n int) [][]jet {
	events := make([][]jet, n)
	for i := range events {
		njets := spec.minJets + rng.Intn(spec.maxJets-spec.minJets+1)
		jets := make([]jet, njets)
		for j := range jets {
			flavor := "light"
			switch r := rng.Float64(); {
			case r < spec.bFrac:
				flavor = "b"
			case r < spec.bFrac+spec.cFrac:
				flavor = "c"
			}
			pt := 20.0 + rng.ExpFloat64()*60.0
			if pt > 1000 {
				pt = 1000
			}
			jets[j] = jet{
				Flavor: flavor,
				PT:     pt,
				Tagged: rng.Float64() < tagRate[flavor],
			}
		}
		events[i] = jets
	}
	return events
}
