package dto

type ProviderOutput struct {
	Name    string
	Version string
	Binary  string
	Enabled bool
}

type DoctorOutput struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type AuditInput struct {
	Provider string
	URL      string
	Strategy string
}

type AuditOutput struct {
	Score  *float64
	Audits map[string]string
}
