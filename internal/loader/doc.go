// Package loader reads replay input documents and writes output documents.
//
// Input documents are JSON or YAML. Loading runs up to three checks:
//
//  1. Schema (strict mode only): the raw document is unified with the
//     embedded CUE definition #Input, which is closed, so unknown fields
//     and wrongly typed values are reported with their document path.
//  2. Decoding into model.Input. Strict mode also rejects unknown fields
//     at this stage.
//  3. Structural validation of the decoded document with
//     go-playground/validator.
//
// Every failure is a *LoadError carrying one of the E0xx codes.
package loader
