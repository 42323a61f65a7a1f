// Package transform holds the built-in table transformations: uppercase,
// map (column rename) and filter. Implementations are stateless; a
// pipeline.Registry hands out a fresh value per application, and every
// transformation supports both the in-memory and the partitioned backend.
package transform
