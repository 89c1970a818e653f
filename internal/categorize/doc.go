// Package categorize distributes ranked candidates into the three fixed
// result buckets: atmosphere, characters, and plot.
//
// The generative path asks the model for two books per bucket plus tags,
// then runs a deterministic repair and top-up over the suggestions so the
// final buckets never contain duplicates or out-of-range indices. When the
// call or its JSON cannot be used, the round-robin fallback assigns the top
// candidates directly.
package categorize
