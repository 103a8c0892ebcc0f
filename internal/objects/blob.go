package objects

// Blob is an immutable byte sequence addressed by its Fingerprint.
// Blobs are stored exactly as given, with no header and no compression,
// so that two identical blobs always collapse to one stored object.
type Blob struct {
	Content []byte
}

// NewBlob wraps data as a Blob. Its Fingerprint is computed over Content
// alone, never over metadata like a path or a timestamp.
func NewBlob(data []byte) *Blob {
	return &Blob{Content: data}
}

// Fingerprint returns the content address of the blob.
func (b *Blob) Fingerprint() Fingerprint {
	return NewFingerprint(b.Content)
}

// Bytes returns the raw on-disk representation of the blob (identical to
// Content; blobs carry no header).
func (b *Blob) Bytes() []byte {
	return b.Content
}
