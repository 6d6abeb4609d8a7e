package storage

// BlobStore is the opaque binary store behind the repositories. Blobs are
// addressed by the id of the image or floorplan row that owns them; the
// content type is recorded at put time and kept authoritative on the row.
type BlobStore interface {
	Put(id string, data []byte, contentType string) error
	// Get returns the stored bytes, or models.ErrNotFound when absent.
	Get(id string) ([]byte, error)
	// Delete removes the blob. Callers treat it as best-effort: a failed
	// delete never aborts the row deletion it accompanies.
	Delete(id string) error
}
