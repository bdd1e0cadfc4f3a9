package catalog

// defaultMachines is the built-in catalog used when no catalog file is given
var defaultMachines = []Machine{
	{
		Name: "Drone 20-20",
		Parts: []Part{
			{Code: "RCC03FR008", Description: `Two-part ORS clamp 1" 1/4`},
			{Code: "VTR01VT005", Description: "20lt Glass Reactor"},
			{Code: "VTR01VT004", Description: "50lt Glass Reactor"},
			{Code: "VTR01VT011", Description: "Internal glass adapter for mixer"},
			{Code: "VTR01VT012", Description: "Glass adapter DN25 for GL45 red tap"},
			{Code: "PFO01PL006", Description: "Red tap with hole"},
			{Code: "PFO01PL010", Description: "Seal for red tap D.42x26 mm. x guide"},
		},
	},
	{
		Name: "OMD S-Series",
		Parts: []Part{
			{Code: "FFS03XX015", Description: "Stirrer holder"},
			{Code: "FFS01CS010", Description: "AC 4 Crucible"},
			{Code: "FFS01GR001", Description: "Crucible graphite S11 jacket and edge"},
			{Code: "FFS01CS001", Description: "Crucible silicon carbide S11 jacket and edge"},
			{Code: "FFS06FF035", Description: "1400grade Paper 450x110"},
			{Code: "FFS06FF036", Description: "Insulating mat 450x110"},
		},
	},
	{
		Name: "MM 30-50",
		Parts: []Part{
			{Code: "PFO02XX013", Description: "50 lt Electric Heater"},
			{Code: "VTR02VT001", Description: "50 lt Glass Reactor"},
			{Code: "PFO02XX001", Description: "Upper Valve Kit"},
			{Code: "PFO02XX002", Description: "Lower Valve Kit"},
			{Code: "PFO02XX003", Description: "Valve"},
		},
	},
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := New(defaultMachines)
	if err != nil {
		panic("invalid built-in catalog: " + err.Error())
	}
	return c
}
