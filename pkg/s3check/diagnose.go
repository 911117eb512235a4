package s3check

// Remediation hints keyed by the service's error code. AccessDenied is
// handled separately because the missing permission depends on which call
// was denied.
var remediations = map[string]string{
	"InvalidAccessKeyId":    "The AWS access key ID does not exist. Check AWS_ACCESS_KEY_ID.",
	"SignatureDoesNotMatch": "The AWS secret key is incorrect. Check AWS_SECRET_ACCESS_KEY.",
	"InvalidBucketName":     "The bucket name is invalid or does not exist. Check S3_BUCKET_NAME.",
	"NoSuchBucket":          "The bucket does not exist. Check S3_BUCKET_NAME.",
}

const defaultRemediation = "Check your credentials, region, and permissions."

// Remediation returns the user-facing hint for a service error code.
// permission names the S3 permission the failed call required (e.g.
// "s3:ListAllMyBuckets") and is only used for AccessDenied. Unknown codes get
// a generic hint.
func Remediation(code, permission string) string {
	if code == "AccessDenied" {
		return "Your IAM user does not have the required S3 permissions. Missing permission: " + permission
	}
	if hint, ok := remediations[code]; ok {
		return hint
	}
	return defaultRemediation
}
