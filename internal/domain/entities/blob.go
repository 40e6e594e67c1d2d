package entities

// BlobStoreInfo describes the bucket behind a blob store
type BlobStoreInfo struct {
	Backend      string `json:"backend"`
	Bucket       string `json:"bucket"`
	Endpoint     string `json:"endpoint,omitempty"`
	BucketExists bool   `json:"bucket_exists"`
	SizeBytes    uint64 `json:"size_bytes,omitempty"`
}

// BlobObject is a stored object with the content type it was written with
type BlobObject struct {
	Data        []byte
	ContentType string
}
