package gemd

import "fmt"

// ObjectType identifies the kind of a GEMD data object. It is the
// discriminator used for type-based grouping, wire serialization, and
// write-order priority when objects are registered in bulk.
type ObjectType string

const (
	// Attribute templates bound the values attributes may take.
	TypePropertyTemplate  ObjectType = "property_template"
	TypeConditionTemplate ObjectType = "condition_template"
	TypeParameterTemplate ObjectType = "parameter_template"

	// Object templates constrain specs and runs of the matching kind.
	TypeMaterialTemplate    ObjectType = "material_template"
	TypeProcessTemplate     ObjectType = "process_template"
	TypeMeasurementTemplate ObjectType = "measurement_template"

	// Specs describe intent; runs record what actually happened.
	TypeProcessSpec     ObjectType = "process_spec"
	TypeMaterialSpec    ObjectType = "material_spec"
	TypeMeasurementSpec ObjectType = "measurement_spec"
	TypeProcessRun      ObjectType = "process_run"
	TypeMaterialRun     ObjectType = "material_run"
	TypeMeasurementRun  ObjectType = "measurement_run"

	// Ingredients bind materials into the processes that consume them.
	TypeIngredientSpec ObjectType = "ingredient_spec"
	TypeIngredientRun  ObjectType = "ingredient_run"
)

// AllObjectTypes lists every object type in write-order priority, lowest
// first. Templates must land before the specs that reference them, specs
// before runs, and ingredients last since they point at both materials
// and processes.
var AllObjectTypes = []ObjectType{
	TypePropertyTemplate,
	TypeConditionTemplate,
	TypeParameterTemplate,
	TypeMaterialTemplate,
	TypeProcessTemplate,
	TypeMeasurementTemplate,
	TypeProcessSpec,
	TypeMaterialSpec,
	TypeMeasurementSpec,
	TypeProcessRun,
	TypeMaterialRun,
	TypeMeasurementRun,
	TypeIngredientSpec,
	TypeIngredientRun,
}

// String returns the wire representation of the object type.
func (t ObjectType) String() string {
	return string(t)
}

// IsValid returns true if the object type is one of the defined constants.
func (t ObjectType) IsValid() bool {
	switch t {
	case TypePropertyTemplate, TypeConditionTemplate, TypeParameterTemplate,
		TypeMaterialTemplate, TypeProcessTemplate, TypeMeasurementTemplate,
		TypeProcessSpec, TypeMaterialSpec, TypeMeasurementSpec,
		TypeProcessRun, TypeMaterialRun, TypeMeasurementRun,
		TypeIngredientSpec, TypeIngredientRun:
		return true
	default:
		return false
	}
}

// Validate checks that the object type is valid.
// Returns an error naming the offending value otherwise.
func (t ObjectType) Validate() error {
	if !t.IsValid() {
		return fmt.Errorf("invalid object type: %q", string(t))
	}
	return nil
}

// ParseObjectType parses a wire string into an ObjectType.
// Returns an error if the string is not a recognized object type.
func ParseObjectType(s string) (ObjectType, error) {
	t := ObjectType(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}
