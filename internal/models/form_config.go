package models

// FormField is one field definition in an activity's record form. Field IDs
// become keys in ActivityRecord.Fields.
type FormField struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Type     string `json:"type"` // text, number, date, time, dropdown, long_text
	Required bool   `json:"required"`
	Visible  bool   `json:"visible"`
	// UseGlobalOptions names a dropdown option set from the 'dropdowns'
	// settings document (e.g. "lines", "designPatterns").
	UseGlobalOptions string   `json:"useGlobalOptions,omitempty"`
	Options          []string `json:"options,omitempty"`
}

// FormConfig is the per-activity-type record form definition.
type FormConfig struct {
	Activity string      `json:"activity"`
	Fields   []FormField `json:"fields"`
}

// DefaultFormFields is the fallback form shown when an activity type has no
// saved configuration.
func DefaultFormFields() []FormField {
	return []FormField{
		{ID: "runningLine", Label: "Current Running Line", Type: "dropdown", Required: true, Visible: true, UseGlobalOptions: "lines"},
		{ID: "rollerDiameter", Label: "Roller Outer Dia.", Type: "number", Required: true, Visible: true},
		{ID: "designPattern", Label: "Design Pattern", Type: "dropdown", Required: false, Visible: true, UseGlobalOptions: "designPatterns"},
		{ID: "rollerRa", Label: "Roller Ra", Type: "number", Required: true, Visible: true},
		{ID: "rollerRz", Label: "Roller Rz", Type: "number", Required: true, Visible: true},
		{ID: "remarks", Label: "Remarks", Type: "long_text", Required: false, Visible: true},
	}
}
