package scraper

import "tendermatch/internal/port"

// Registry maps extractor keys to source-specific extractors. Unknown keys
// resolve to the generic extractor, so new sources work out of the box and
// get layout-aware extraction only once an extractor is registered.
type Registry struct {
	extractors map[string]port.SourceExtractor
	generic    port.SourceExtractor
}

// NewRegistry creates a registry with the built-in extractors registered.
func NewRegistry() *Registry {
	r := &Registry{
		extractors: make(map[string]port.SourceExtractor),
		generic:    &GenericExtractor{},
	}
	r.Register("nicgep", &NICGEPExtractor{})
	r.Register("eprocure", &EProcureExtractor{})
	r.Register("gem", &GeMExtractor{})
	return r
}

// Register binds an extractor to a key, replacing any previous binding.
func (r *Registry) Register(key string, ex port.SourceExtractor) {
	r.extractors[key] = ex
}

// Get returns the extractor for key, or the generic extractor when the key
// is empty or unknown.
func (r *Registry) Get(key string) port.SourceExtractor {
	if ex, ok := r.extractors[key]; ok {
		return ex
	}
	return r.generic
}

// Generic returns the fallback extractor.
func (r *Registry) Generic() port.SourceExtractor {
	return r.generic
}
