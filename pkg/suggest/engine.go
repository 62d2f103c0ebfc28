package suggest

import (
	"github.com/bastiangx/strokeserve/pkg/dictionary"
	"github.com/bastiangx/strokeserve/pkg/learn"
)

// Options holds the tunable resolver, ranking and prediction constants.
type Options struct {
	PageSize           int
	PrefixLimit        int
	ThreePlusThreeMin  int
	PredictionLimit    int
	PredictionBackfill int
	CacheSize          int
}

// DefaultOptions returns the stock engine constants.
func DefaultOptions() Options {
	return Options{
		PageSize:           9,
		PrefixLimit:        50,
		ThreePlusThreeMin:  8,
		PredictionLimit:    20,
		PredictionBackfill: 5,
		CacheSize:          512,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.PageSize <= 0 {
		o.PageSize = d.PageSize
	}
	if o.PrefixLimit < 0 {
		o.PrefixLimit = d.PrefixLimit
	}
	if o.ThreePlusThreeMin <= 0 {
		o.ThreePlusThreeMin = d.ThreePlusThreeMin
	}
	if o.PredictionLimit <= 0 {
		o.PredictionLimit = d.PredictionLimit
	}
	if o.PredictionBackfill < 0 {
		o.PredictionBackfill = d.PredictionBackfill
	}
	return o
}

// Engine ties the dictionary, the phrase graph and the learned model
// together. It reads the model but never writes it.
type Engine struct {
	dict    *dictionary.Dictionary
	phrases *dictionary.PhraseGraph
	model   *learn.Model
	opts    Options
	cache   *HotCache
}

var _ ISuggester = (*Engine)(nil)

// NewEngine creates an engine. phrases may be nil.
func NewEngine(dict *dictionary.Dictionary, phrases *dictionary.PhraseGraph, model *learn.Model, opts Options) *Engine {
	if dict == nil {
		dict = dictionary.Fallback()
	}
	if model == nil {
		model = learn.NewModel()
	}
	opts = opts.withDefaults()
	e := &Engine{
		dict:    dict,
		phrases: phrases,
		model:   model,
		opts:    opts,
	}
	if opts.CacheSize > 0 {
		e.cache = NewHotCache(opts.CacheSize)
	}
	return e
}

// Dictionary returns the code table.
func (e *Engine) Dictionary() *dictionary.Dictionary {
	return e.dict
}

// Model returns the learned model.
func (e *Engine) Model() *learn.Model {
	return e.model
}

// Options returns the active constants.
func (e *Engine) Options() Options {
	return e.opts
}

// Suggest resolves and ranks code.
func (e *Engine) Suggest(code string) []Candidate {
	return e.Rank(e.Resolve(code))
}

// Stats returns counters about the loaded data.
func (e *Engine) Stats() map[string]int {
	stats := e.dict.Stats()
	stats["phraseEdges"] = e.phrases.Edges()
	stats["learnedWords"] = e.model.Len()
	if e.cache != nil {
		for k, v := range e.cache.Stats() {
			stats[k] = v
		}
	}
	return stats
}
