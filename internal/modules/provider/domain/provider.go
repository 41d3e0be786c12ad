package domain

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrProviderDisabled = errors.New("audit provider plugin is disabled")
	ErrChecksumMismatch = errors.New("audit provider binary checksum mismatch")
	ErrProviderTimeout  = errors.New("audit provider plugin timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest describes one out-of-process audit provider binary.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Binary  string `json:"binary"`
	SHA256  string `json:"sha256"`
	Enabled bool   `json:"enabled"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("provider name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("provider version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("provider binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("provider sha256 must be lowercase 64-char hex")
	}
	return nil
}

// Metadata is what a running plugin reports about itself.
type Metadata struct {
	Name       string
	Version    string
	Strategies []string
}

// AuditPayload is the provider module's raw measurement shape. A nil Score
// marks absence; the analysis module validates it into a typed result.
type AuditPayload struct {
	Score  *float64
	Audits map[string]string
}

// Health is the outcome of one doctor probe against a manifest.
type Health struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}
