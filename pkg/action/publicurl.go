package action

import "fmt"

// PublicURL renders the public URL an object is reachable at after a
// public-read ACL is applied, per the region's virtual-hosted template.
func PublicURL(region, bucket, key string) string {
	if region == "us-east-1" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
	}
	return fmt.Sprintf("https://%s.s3-%s.amazonaws.com/%s", bucket, region, key)
}
