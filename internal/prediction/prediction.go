// Package prediction produces the placeholder disease guess attached to a
// newly submitted case. It is not a model: it picks from a fixed catalog.
package prediction

import (
	"encoding/json"
	"math/rand"
	"sync"
	"time"
)

// Prediction is stored verbatim in cases.ai_prediction.
type Prediction struct {
	Disease    string `json:"disease"`
	Confidence int    `json:"confidence"`
	FirstAid   string `json:"firstAid"`
}

// JSON encodes p for a datatypes.JSON column.
func (p Prediction) JSON() []byte {
	b, _ := json.Marshal(p)
	return b
}

var catalog = []Prediction{
	{Disease: "Foot and Mouth Disease", Confidence: 85, FirstAid: "Isolate animal, apply antiseptic, consult veterinarian"},
	{Disease: "Bovine Tuberculosis", Confidence: 72, FirstAid: "Quarantine, monitor closely, consult doctor"},
	{Disease: "Anthrax", Confidence: 78, FirstAid: "Immediate veterinary care required"},
	{Disease: "Mastitis", Confidence: 88, FirstAid: "Maintain hygiene, apply antibiotics, consult vet"},
	{Disease: "Brucellosis", Confidence: 65, FirstAid: "Isolate animal, wear protective gear"},
}

// Catalog returns a copy of every prediction Predict can return.
func Catalog() []Prediction {
	out := make([]Prediction, len(catalog))
	copy(out, catalog)
	return out
}

// Predictor guesses a disease from free-text symptoms.
type Predictor interface {
	Predict(symptoms string) Prediction
}

// RandomPredictor ignores the symptoms and picks uniformly from Catalog.
type RandomPredictor struct {
	mu   sync.Mutex
	intn func(n int) int
}

func NewRandomPredictor() *RandomPredictor {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &RandomPredictor{intn: rng.Intn}
}

// NewFixedPredictor builds a RandomPredictor driven by pick, for tests.
func NewFixedPredictor(pick func(n int) int) *RandomPredictor {
	return &RandomPredictor{intn: pick}
}

func (p *RandomPredictor) Predict(string) Prediction {
	p.mu.Lock()
	i := p.intn(len(catalog))
	p.mu.Unlock()
	if i < 0 || i >= len(catalog) {
		i = 0
	}
	return catalog[i]
}
