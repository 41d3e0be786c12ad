package domain_test

import (
	"strings"
	"testing"

	"pagepulse/internal/modules/provider/domain"
)

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	base := domain.Manifest{
		Name:    "reference",
		Version: "1.0.0",
		Binary:  "/usr/local/bin/pagepulse-reference",
		SHA256:  strings.Repeat("ab", 32),
		Enabled: true,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("manifest should be valid: %v", err)
	}

	missingName := base
	missingName.Name = ""
	if err := missingName.Validate(); err == nil {
		t.Fatalf("missing name should fail")
	}
	badChecksum := base
	badChecksum.SHA256 = "ABCD"
	if err := badChecksum.Validate(); err == nil {
		t.Fatalf("short or uppercase sha256 should fail")
	}
	missingBinary := base
	missingBinary.Binary = ""
	if err := missingBinary.Validate(); err == nil {
		t.Fatalf("missing binary should fail")
	}
}
