// Standard interfaces and datatypes for the s3check project.
// Terms:
//   "store" : A specific implementation of object storage (e.g. AWS S3)
//   "run" : One linear pass of the connectivity check (list, then optional upload)
package s3check

// Credentials holds everything needed to construct a storage client. It is
// resolved once at startup and never modified afterwards. AccessKeyID and
// SecretKey must be non-empty before any store is built.
type Credentials struct {
	AccessKeyID string
	SecretKey   string
	Region      string

	// BucketName is optional. When empty, the upload step of a run is
	// skipped entirely.
	BucketName string
}

// Bucket is a read-only projection of a bucket owned by the account. The
// remote service owns the real thing.
type Bucket struct {
	Name string
}

// UploadResult describes a single successful object write.
type UploadResult struct {
	Bucket string
	Key    string
	ETag   string
}

// An ObjectStore provides the two storage capabilities a run needs. Service
// implementations must report remote failures as *ServiceError so callers can
// classify them; any other error is treated as unexpected.
type ObjectStore interface {
	// List every bucket the account owns.
	ListBuckets() ([]Bucket, error)

	// Write body to bucket under key.
	// Returns: metadata about the new object, including the service's ETag.
	PutObject(bucket, key string, body []byte) (*UploadResult, error)

	// Users must call Destroy on any created store to perform cleanup.
	Destroy()
}
