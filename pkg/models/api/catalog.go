package api

type NamingRule struct {
	Key          string   `json:"key" yaml:"key"`
	Pattern      string   `json:"pattern" yaml:"pattern"`
	MinLength    int      `json:"min_length" yaml:"min_length"`
	MaxLength    int      `json:"max_length" yaml:"max_length"`
	Scope        string   `json:"scope" yaml:"scope"`
	Description  string   `json:"description" yaml:"description"`
	Restrictions []string `json:"restrictions" yaml:"restrictions"`
}

type Region struct {
	Name       string `json:"name" yaml:"name"`
	AIServices bool   `json:"ai_services" yaml:"ai_services"`
	OpenAI     bool   `json:"openai" yaml:"openai"`
	Search     bool   `json:"search" yaml:"search"`
}

type SkuRule struct {
	Key         string            `json:"key" yaml:"key"`
	ValidValues []string          `json:"valid_values" yaml:"valid_values"`
	Limitations map[string]string `json:"limitations,omitempty" yaml:"limitations,omitempty"`
}

type Catalog struct {
	Version       string       `json:"version" yaml:"version"`
	NamingRules   []NamingRule `json:"naming_rules" yaml:"naming_rules"`
	Regions       []Region     `json:"regions" yaml:"regions"`
	Skus          []SkuRule    `json:"skus" yaml:"skus"`
	BooleanKeys   []string     `json:"boolean_keys" yaml:"boolean_keys"`
	NetworkAccess []string     `json:"network_access" yaml:"network_access"`
	EmailPattern  string       `json:"email_pattern" yaml:"email_pattern"`
}
