// Package habit owns the mutable definition catalogs: Habits and Tracks.
//
// The catalog is a plain in-memory structure with no history and no
// persistence of its own. Durability is layered on top by the tracker,
// which snapshots the catalog after every mutation.
//
// # Invariants
//
//   - Habit and Track ids are opaque strings, unique within a catalog.
//   - Habits are never edited in place; they are created and deleted.
//   - Removing a Track cascades to every Habit whose TrackID matches.
//     Completion entries for cascaded habits are NOT cleaned up; they
//     become soft orphans filtered out at read time (see package
//     completion).
//   - Titles are normalized to Unicode NFC on entry so display labels
//     and CSV headers compare stably across platforms.
package habit
