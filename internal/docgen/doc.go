// Package docgen renders plain-text legal documents from a case snapshot.
//
// Templates are data. Each one is a text/template file listed in
// catalog.yaml together with the slots it reads, and violation labels and
// analysis paragraphs come from violations.yaml. Swapping the fs.FS passed to
// NewGenerator swaps the legal language without touching the engine.
//
// NewGenerator rejects a catalog entry whose slots differ from the fields its
// template reads.
//
// Empty fields render as bracketed placeholders such as [CASE NUMBER] so the
// output can be edited by hand before use. Rendering never modifies its
// input and a Generator is safe for concurrent use.
package docgen
