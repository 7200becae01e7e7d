// Package normalisers contains format-specific implementations that turn
// raw uploads into document text.
//
// Each normaliser lives in its own sub-package (plaintext, markdown, csv)
// and implements the driven.Normaliser port. The Registry in this package
// selects the best normaliser for an upload by MIME type or file
// extension, preferring higher-priority matches.
//
// Normalisers produce whole-document text only. Chunking is handled
// downstream by the PostProcessor pipeline.
package normalisers
