// Package transform applies literal edits to PathPilot configuration files.
//
// A Step names one target file, the marker that proves the step already
// ran, and an ordered list of rules. Rules come in four kinds:
//
//   - replace: every occurrence of an exact old string becomes the new
//     string followed by the marker comment. A missing old string skips
//     that rule only.
//   - append: a block is added to the end of the file. Blocks are
//     text/template sources so operator parameters such as the encoder
//     scale can be substituted.
//   - file: the whole file is overwritten with a reference file from the
//     bundle or with generated content.
//   - section: a line scanner tracks which INI section each line belongs
//     to and applies that section's replacements only.
//
// The Applier drives each Step through the same sequence: read, check the
// marker, rewrite in memory, back up, write. Only filesystem failures are
// errors; a missing pattern or an existing marker are ordinary outcomes.
package transform
