// Package notes coordinates note mutations.
//
// Service validates title and description (both must be non-empty after
// trimming) before touching the store, performs the store operation, and then
// refreshes the projection. Errors surface as:
//
//   - *store.ValidationError: nothing was written, nothing refreshed
//   - store.ErrNotFound: the edited note does not exist
//   - *store.StorageError: the store failed; the projection is unchanged
//   - *RefreshError: the mutation succeeded but the projection is stale
//
// Service also formats notes for sharing (Share, ShareHTML).
package notes
