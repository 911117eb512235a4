package s3check

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Dummy objects are named demo/dummy-object-<millis>.txt so repeated runs
// never collide.
const keyPrefix = "demo/dummy-object-"
const keySuffix = ".txt"

// A Runner drives one connectivity check against an ObjectStore. The check is
// strictly linear: list all buckets, then (when a bucket name is configured)
// upload one dummy object.
type Runner struct {
	log   logrus.FieldLogger
	store ObjectStore
}

func NewRunner(logger logrus.FieldLogger, store ObjectStore) *Runner {
	return &Runner{log: logger, store: store}
}

// Run performs the full check. A failure at the list step aborts the run and
// is returned; a failure at the upload step is diagnosed and reported but the
// list step's success stands, so the run itself still returns nil.
func (self *Runner) Run(bucketName string) error {
	if err := self.ListBuckets(); err != nil {
		return err
	}

	if bucketName == "" {
		self.log.Warn("S3_BUCKET_NAME not set. Skipping upload.")
		return nil
	}

	// Already diagnosed inside UploadDummy, nothing more to do with it here.
	_ = self.UploadDummy(bucketName)
	return nil
}

// ListBuckets fetches and prints every bucket the account owns. An empty
// account gets an explicit notice rather than an empty enumeration.
func (self *Runner) ListBuckets() error {
	self.log.Info("Attempting to list buckets...")

	buckets, err := self.store.ListBuckets()
	if err != nil {
		self.diagnose("Error listing buckets", err, "s3:ListAllMyBuckets")
		return errors.Wrap(err, "List buckets failed")
	}

	if len(buckets) == 0 {
		self.log.Info("No buckets found in this account")
		return nil
	}

	self.log.Info("Your S3 buckets:")
	for _, bucket := range buckets {
		self.log.Info("  " + bucket.Name)
	}
	self.log.Info(fmt.Sprintf("Found %d bucket(s)", len(buckets)))
	return nil
}

// UploadDummy writes a small timestamped text object to bucket.
func (self *Runner) UploadDummy(bucket string) error {
	now := time.Now()
	key := fmt.Sprintf("%s%d%s", keyPrefix, now.UnixNano()/int64(time.Millisecond), keySuffix)
	body := []byte("This is a dummy object created at " + now.Format(time.RFC3339))

	self.log.Info("Attempting to upload dummy object to bucket: " + bucket)

	result, err := self.store.PutObject(bucket, key, body)
	if err != nil {
		self.diagnose("Error uploading object", err, "s3:PutObject")
		return errors.Wrap(err, "Upload failed")
	}

	self.log.Info("Object uploaded successfully:")
	self.log.Info("  Bucket: " + result.Bucket)
	self.log.Info("  Key:    " + result.Key)
	self.log.Info("  ETag:   " + result.ETag)
	return nil
}

// diagnose logs a failed call with its service code, message and remediation
// hint. Errors the service never got to classify are logged as-is.
func (self *Runner) diagnose(what string, err error, permission string) {
	serr, ok := AsServiceError(err)
	if !ok {
		self.log.Error(fmt.Sprintf("%s: unexpected error: %v", what, err))
		return
	}

	self.log.Error(what + ":")
	self.log.Error("  Error Code:    " + serr.Code)
	self.log.Error("  Error Message: " + serr.Message)
	self.log.Error("  " + Remediation(serr.Code, permission))
}
