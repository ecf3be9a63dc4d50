package types

// ProjectConfig is the parsed startmaja.yaml folders definition, after
// environment overrides have been applied.
type ProjectConfig struct {
	Paths PathsConfig `yaml:"paths" json:"paths"`
}

// PathsConfig lists the directories and executables a run works with.
// Environment overrides use the STARTMAJA_ prefix, e.g. STARTMAJA_L1.
type PathsConfig struct {
	Work string `yaml:"work" json:"work" envconfig:"WORK" validate:"required,dir"`
	L1   string `yaml:"l1" json:"l1" envconfig:"L1" validate:"required"`
	L2   string `yaml:"l2" json:"l2" envconfig:"L2" validate:"required"`
	Exe  string `yaml:"exe" json:"exe" envconfig:"EXE" validate:"required,file"`
	// CAMS is optional; without it every workplan runs without CAMS files.
	CAMS string `yaml:"cams,omitempty" json:"cams,omitempty" envconfig:"CAMS" validate:"omitempty,dir"`
	GIPP string `yaml:"gipp,omitempty" json:"gipp,omitempty" envconfig:"GIPP" validate:"omitempty,dir"`
	DTM  string `yaml:"dtm,omitempty" json:"dtm,omitempty" envconfig:"DTM" validate:"omitempty,dir"`
}
