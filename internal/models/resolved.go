package models

// ResolvedDatabase holds the fully-determined database settings.
// MasterPassword carries a secret-store reference, never a literal secret.
type ResolvedDatabase struct {
	Engine           string `json:"engine"`
	InstanceClass    string `json:"instance_class"`
	StorageType      string `json:"storage_type"`
	AllocatedStorage int32  `json:"allocated_storage"`
	MultiAZ          bool   `json:"multi_az"`
	Name             string `json:"name"`
	MasterUsername   string `json:"master_username"`
	MasterPassword   string `json:"master_password"`
}

// ResolvedTable holds the fully-determined table throughput.
type ResolvedTable struct {
	ReadCapacity  int64 `json:"read_capacity"`
	WriteCapacity int64 `json:"write_capacity"`
}

// ResolvedConfiguration is the Configuration with every field concrete. It
// is produced exactly once per invocation and never partially filled. The
// two feature flags are resolved here and nowhere else; every downstream
// builder branches on these values only.
type ResolvedConfiguration struct {
	Name                     string            `json:"name"`
	Subnets                  []Subnet          `json:"subnets"`
	VPC                      VPC               `json:"vpc"`
	Region                   string            `json:"region"`
	KeyName                  string            `json:"key_name"`
	Image                    string            `json:"image"`
	UserData                 string            `json:"user_data"`
	InstanceType             string            `json:"instance_type"`
	ManagementSecurityGroups []string          `json:"management_security_groups"`
	DatabaseEnabled          bool              `json:"database_enabled"`
	Database                 ResolvedDatabase  `json:"database"`
	TableEnabled             bool              `json:"table_enabled"`
	Table                    ResolvedTable     `json:"table"`
	Tags                     map[string]string `json:"tags"`
}

// SubnetIDs returns the subnet ids in input order.
func (rc *ResolvedConfiguration) SubnetIDs() []string {
	ids := make([]string, len(rc.Subnets))
	for i, sn := range rc.Subnets {
		ids[i] = sn.ID
	}
	return ids
}
