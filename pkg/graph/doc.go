// Package graph provides the canonical JSON serialization formats for
// genealogy input and computed layouts.
//
// Two formats live here:
//
//   - Input: the flat genealogy description (individuals plus relationships,
//     optionally with layout parameters). This is what the CLI reads from
//     disk and the API accepts over HTTP.
//   - Document: a computed layout together with the canvas dimensions it was
//     fitted to. This is what the CLI writes and the API returns.
//
// The formats are human-readable and designed for round-trip fidelity:
// read → layout → write → re-read produces identical structures.
//
// # Usage
//
//	in, err := graph.ReadInputFile("family.json")
//	if err != nil { ... }
//	res, err := layout.Compute(ctx, in.Snapshot(), in.LayoutParams(), logger)
//	if err != nil { ... }
//	doc := graph.NewDocument(res, in.LayoutParams())
//	err = graph.WriteDocumentFile(doc, "layout.json")
package graph
