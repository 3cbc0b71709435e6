// Package projection holds the in-memory view of all notes.
//
// NoteList is refreshed explicitly: once at startup and after every successful
// mutation. There is no polling and no incremental update; each Refresh reloads
// the full list from the store. Presentation code observes changes through
// Subscribe rather than reading shared state.
package projection
