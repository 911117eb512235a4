// AWS S3 specific functions. Implements the ObjectStore interface.

package awss3

import (
	"bytes"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/qmm-dev/s3check/pkg/s3check"
)

type S3Store struct {
	log    logrus.FieldLogger
	client *s3.S3
}

// NewStore builds an S3-backed ObjectStore from already-resolved credentials.
// The credentials are passed to the SDK statically; no provider chain lookup
// happens here.
func NewStore(logger logrus.FieldLogger, creds *s3check.Credentials) (*S3Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(creds.Region),
		Credentials: credentials.NewStaticCredentials(creds.AccessKeyID, creds.SecretKey, ""),
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create AWS session")
	}

	logger.Info("Successfully created S3 client")
	logger.Info("AWS Region: " + creds.Region)

	return &S3Store{log: logger, client: s3.New(sess)}, nil
}

func (self *S3Store) ListBuckets() ([]s3check.Bucket, error) {
	resp, err := self.client.ListBuckets(&s3.ListBucketsInput{})
	if err != nil {
		return nil, translate(err)
	}

	buckets := make([]s3check.Bucket, 0, len(resp.Buckets))
	for _, bucket := range resp.Buckets {
		buckets = append(buckets, s3check.Bucket{Name: aws.StringValue(bucket.Name)})
	}
	return buckets, nil
}

func (self *S3Store) PutObject(bucket, key string, body []byte) (*s3check.UploadResult, error) {
	resp, err := self.client.PutObject(&s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return nil, translate(err)
	}

	return &s3check.UploadResult{
		Bucket: bucket,
		Key:    key,
		ETag:   aws.StringValue(resp.ETag),
	}, nil
}

func (self *S3Store) Destroy() {
	// The SDK client holds no connections that outlive its requests.
}

// translate converts SDK errors into the (code, message) form that the
// runner classifies on. Anything that isn't a service-reported error passes
// through wrapped.
func translate(err error) error {
	if aerr, ok := err.(awserr.Error); ok {
		return &s3check.ServiceError{Code: aerr.Code(), Message: aerr.Message()}
	}
	return errors.Wrap(err, "S3 request failed")
}
