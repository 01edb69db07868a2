package mfcc

import (
	"sync"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/spectral"
)

// FilterBankCache shares mel filter banks between extractors. A bank is
// read-only after construction so one instance may serve many goroutines.
type FilterBankCache struct {
	banks sync.Map // spectral.MelFilterBankParams -> *spectral.MelFilterBank
}

// DefaultFilterBankCache is used by NewExtractor
var DefaultFilterBankCache = NewFilterBankCache()

// NewFilterBankCache creates an empty cache
func NewFilterBankCache() *FilterBankCache {
	return &FilterBankCache{}
}

// Get returns the bank for params, building it on first use
func (c *FilterBankCache) Get(params spectral.MelFilterBankParams) (*spectral.MelFilterBank, error) {
	if params.HighFreq == 0 {
		params.HighFreq = float64(params.SampleRate) / 2.0
	}

	if bank, ok := c.banks.Load(params); ok {
		return bank.(*spectral.MelFilterBank), nil
	}

	bank, err := spectral.NewMelFilterBank(params)
	if err != nil {
		return nil, err
	}

	actual, _ := c.banks.LoadOrStore(params, bank)
	return actual.(*spectral.MelFilterBank), nil
}

// Len returns the number of cached banks
func (c *FilterBankCache) Len() int {
	n := 0
	c.banks.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Clear drops every cached bank
func (c *FilterBankCache) Clear() {
	c.banks.Clear()
}
