package s3check

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemediationTable(t *testing.T) {
	cases := []struct {
		code     string
		expected string
	}{
		{"InvalidAccessKeyId", "AWS_ACCESS_KEY_ID"},
		{"SignatureDoesNotMatch", "AWS_SECRET_ACCESS_KEY"},
		{"InvalidBucketName", "S3_BUCKET_NAME"},
		{"NoSuchBucket", "S3_BUCKET_NAME"},
		{"SlowDown", defaultRemediation},
		{"", defaultRemediation},
	}

	for _, c := range cases {
		assert.Contains(t, Remediation(c.code, "s3:ListAllMyBuckets"), c.expected, c.code)
	}
}

func TestRemediationAccessDeniedNamesPermission(t *testing.T) {
	assert.Contains(t, Remediation("AccessDenied", "s3:ListAllMyBuckets"), "s3:ListAllMyBuckets")
	assert.Contains(t, Remediation("AccessDenied", "s3:PutObject"), "s3:PutObject")
}

func TestServiceErrorString(t *testing.T) {
	err := &ServiceError{Code: "AccessDenied", Message: "not allowed"}
	assert.Equal(t, "AccessDenied: not allowed", err.Error())

	serr, ok := AsServiceError(error(err))
	assert.True(t, ok)
	assert.Equal(t, "AccessDenied", serr.Code)
}
