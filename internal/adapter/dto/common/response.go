package common

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// HealthResponse is the body of the health check
type HealthResponse struct {
	Status      string         `json:"status"`
	Environment string         `json:"environment"`
	Storage     *StorageHealth `json:"storage,omitempty"`
}

// StorageHealth reports on the blob store bucket
type StorageHealth struct {
	Backend      string `json:"backend,omitempty"`
	Bucket       string `json:"bucket,omitempty"`
	Endpoint     string `json:"endpoint,omitempty"`
	BucketExists bool   `json:"bucket_exists"`
	SizeBytes    uint64 `json:"size_bytes,omitempty"`
	Error        string `json:"error,omitempty"`
}
