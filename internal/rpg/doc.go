// Package rpg provides the typed project model for RPG Maker MV/MZ data files.
//
// This package decodes generic gjson trees into Command, Condition, EventPage,
// Event and CommonEvent values. It imports nothing internal, so every other
// package can depend on it.
//
// Key design constraints:
//   - Decoding never panics or fails hard on a missing field; a record that
//     does not match its schema is reported as invalid and the caller skips it
//   - Command parameters keep their JSON order; scalars that match no tag are
//     dropped, exactly like the editor's own loader
//   - A one-byte string parameter is a Char, never a String
package rpg
