// Package engine implements the command decoding and access-classification
// engine of rpgscan.
//
// The engine walks every event page and common event of a loaded project and
// reports each place the queried variable or switch is read or written.
//
// ARCHITECTURE:
//
// Decode once, match once:
// Every command is decoded by decodeInstruction into a closed set of
// instruction variants. Arity and tag checks happen only there; a command
// that does not fit its opcode's schema decodes to nil and is inert. The
// matchers then work on typed fields and never re-inspect raw parameters.
//
// Matchers:
// - Condition gate: once per event page, before the page's commands
// - Trigger gate: once per common event with an AUTORUN or PARALLEL trigger
// - Conditional branch, control variable, control switch and script commands
// A matcher either declines or produces exactly one Finding.
//
// Script text:
// Script lines are free text. They are only ever searched for the read
// accessor and write mutator call patterns of the queried id, behind the
// ScriptMatcher interface. Ids computed at runtime are not found.
//
// DETERMINISM:
//
// The scan is single-threaded and single-pass. Maps are visited in ascending
// id, events, pages and commands in file order, then common events in file
// order. Identical inputs and queries yield identical, identically ordered
// findings.
package engine
