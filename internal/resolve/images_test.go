package resolve

import (
	"errors"
	"testing"

	"github.com/hemantobora/vmapp/internal/models"
)

func TestImageForSupportedRegions(t *testing.T) {
	for _, region := range SupportedRegions() {
		image, err := ImageFor(region)
		if err != nil {
			t.Fatalf("ImageFor(%s): %v", region, err)
		}
		if image == "" {
			t.Errorf("ImageFor(%s): empty image", region)
		}
		// Pure: same input, same output.
		again, _ := ImageFor(region)
		if again != image {
			t.Errorf("ImageFor(%s) not deterministic: %s vs %s", region, image, again)
		}
	}
}

func TestImageForKnownMapping(t *testing.T) {
	image, err := ImageFor("us-east-1")
	if err != nil {
		t.Fatalf("ImageFor(us-east-1): %v", err)
	}
	if image != "ami-a60c23b0" {
		t.Errorf("expected ami-a60c23b0, got %s", image)
	}
}

func TestImageForUnsupportedRegionFails(t *testing.T) {
	image, err := ImageFor("mars-north-1")
	if err == nil {
		t.Fatalf("expected error, got image %q", image)
	}
	if image != "" {
		t.Errorf("expected no image on failure, got %q", image)
	}
	var unsupported *models.UnsupportedRegionError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedRegionError, got %T", err)
	}
	if unsupported.Region != "mars-north-1" {
		t.Errorf("error should carry the offending region, got %q", unsupported.Region)
	}
	if len(unsupported.Supported) != 4 {
		t.Errorf("expected 4 supported regions, got %v", unsupported.Supported)
	}
}
