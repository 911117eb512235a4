package awss3

import (
	"github.com/aws/aws-sdk-go/aws/endpoints"
)

// ValidRegion reports whether region names a region the SDK knows about, in
// any AWS partition (standard, China, GovCloud, ...).
func ValidRegion(region string) bool {
	for _, partition := range endpoints.DefaultPartitions() {
		if _, ok := partition.Regions()[region]; ok {
			return true
		}
	}
	return false
}
