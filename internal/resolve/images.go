package resolve

import (
	"sort"

	"github.com/hemantobora/vmapp/internal/models"
)

// Base machine images for the supported regions. The map is closed on
// purpose: an unknown region is an error, never a placeholder string.
var baseImages = map[string]string{
	"us-east-1":      "ami-a60c23b0",
	"us-west-2":      "ami-6b8cef13",
	"eu-west-1":      "ami-d7b9a2b1",
	"ap-southeast-2": "ami-10918173",
}

// SupportedRegions returns the regions the image map covers, sorted.
func SupportedRegions() []string {
	regions := make([]string, 0, len(baseImages))
	for r := range baseImages {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions
}

// ImageFor looks up the base image for a region.
func ImageFor(region string) (string, error) {
	image, ok := baseImages[region]
	if !ok {
		return "", &models.UnsupportedRegionError{
			Region:    region,
			Supported: SupportedRegions(),
		}
	}
	return image, nil
}
