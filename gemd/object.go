package gemd

// DataObject is a node of the materials-provenance graph. It exposes the
// contract the batching and registration machinery consumes: a type tag
// for grouping, scoped identity keys for deduplication, and the set of
// other objects it directly references.
//
// The set of implementations is closed: every concrete GEMD object type
// lives in this package, so type-priority lookups can be exhaustive.
type DataObject interface {
	Ref

	// TypeTag returns the object's type discriminator.
	TypeTag() ObjectType

	// Name returns the object's display name, used in diagnostics.
	Name() string

	// UIDs returns the object's identity keys as a scope-to-id map.
	// An object may have zero or more identity keys; two objects sharing
	// any key are the same logical entity.
	UIDs() map[string]string

	// AddUID records an identity key under the given scope, replacing
	// any previous id for that scope.
	AddUID(scope, id string)

	// RemoveUID drops the identity key for the given scope, if present.
	RemoveUID(scope string)

	// Tags returns the object's classification tags.
	Tags() []string

	// SetTags replaces the object's tags wholesale.
	SetTags(tags []string)

	// Dependencies returns the objects (or links to them) this object
	// directly references. A run depends on its spec, a spec on its
	// template, an ingredient on its material and process.
	Dependencies() []Ref

	// wireFields returns the type-specific wire fields with every
	// object reference substituted by a link. Keeping this unexported
	// closes the implementation set to this package.
	wireFields() (map[string]any, error)
}

// baseObject carries the fields every data object shares.
type baseObject struct {
	name string
	uids map[string]string
	tags []string
}

func newBase(name string) baseObject {
	return baseObject{name: name, uids: make(map[string]string)}
}

func (b *baseObject) Name() string { return b.name }

func (b *baseObject) UIDs() map[string]string { return b.uids }

func (b *baseObject) AddUID(scope, id string) {
	if b.uids == nil {
		b.uids = make(map[string]string)
	}
	b.uids[scope] = id
}

func (b *baseObject) RemoveUID(scope string) {
	delete(b.uids, scope)
}

func (b *baseObject) Tags() []string { return b.tags }

func (b *baseObject) SetTags(tags []string) { b.tags = tags }

// Links returns the object's identity keys as links, in scope-sorted
// deterministic order.
func (b *baseObject) Links() []LinkByUID {
	return uidLinks(b.uids)
}

// PropertyTemplate bounds the values a property attribute may take.
type PropertyTemplate struct {
	baseObject
	Bounds map[string]any
}

// NewPropertyTemplate creates a property template with the given name.
func NewPropertyTemplate(name string) *PropertyTemplate {
	return &PropertyTemplate{baseObject: newBase(name)}
}

func (o *PropertyTemplate) TypeTag() ObjectType { return TypePropertyTemplate }

func (o *PropertyTemplate) Dependencies() []Ref { return nil }

func (o *PropertyTemplate) wireFields() (map[string]any, error) {
	return map[string]any{"bounds": o.Bounds}, nil
}

// WithUID records an identity key and returns the template for chaining.
func (o *PropertyTemplate) WithUID(scope, id string) *PropertyTemplate {
	o.AddUID(scope, id)
	return o
}

// ConditionTemplate bounds the values a condition attribute may take.
type ConditionTemplate struct {
	baseObject
	Bounds map[string]any
}

// NewConditionTemplate creates a condition template with the given name.
func NewConditionTemplate(name string) *ConditionTemplate {
	return &ConditionTemplate{baseObject: newBase(name)}
}

func (o *ConditionTemplate) TypeTag() ObjectType { return TypeConditionTemplate }

func (o *ConditionTemplate) Dependencies() []Ref { return nil }

func (o *ConditionTemplate) wireFields() (map[string]any, error) {
	return map[string]any{"bounds": o.Bounds}, nil
}

// WithUID records an identity key and returns the template for chaining.
func (o *ConditionTemplate) WithUID(scope, id string) *ConditionTemplate {
	o.AddUID(scope, id)
	return o
}

// ParameterTemplate bounds the values a parameter attribute may take.
type ParameterTemplate struct {
	baseObject
	Bounds map[string]any
}

// NewParameterTemplate creates a parameter template with the given name.
func NewParameterTemplate(name string) *ParameterTemplate {
	return &ParameterTemplate{baseObject: newBase(name)}
}

func (o *ParameterTemplate) TypeTag() ObjectType { return TypeParameterTemplate }

func (o *ParameterTemplate) Dependencies() []Ref { return nil }

func (o *ParameterTemplate) wireFields() (map[string]any, error) {
	return map[string]any{"bounds": o.Bounds}, nil
}

// WithUID records an identity key and returns the template for chaining.
func (o *ParameterTemplate) WithUID(scope, id string) *ParameterTemplate {
	o.AddUID(scope, id)
	return o
}

// MaterialTemplate constrains material specs via attribute templates.
type MaterialTemplate struct {
	baseObject
	Properties []Ref
}

// NewMaterialTemplate creates a material template with the given name.
func NewMaterialTemplate(name string) *MaterialTemplate {
	return &MaterialTemplate{baseObject: newBase(name)}
}

func (o *MaterialTemplate) TypeTag() ObjectType { return TypeMaterialTemplate }

func (o *MaterialTemplate) Dependencies() []Ref { return presentRefs(o.Properties...) }

func (o *MaterialTemplate) wireFields() (map[string]any, error) {
	return refListFields(map[string][]Ref{"properties": o.Properties})
}

// WithUID records an identity key and returns the template for chaining.
func (o *MaterialTemplate) WithUID(scope, id string) *MaterialTemplate {
	o.AddUID(scope, id)
	return o
}

// ProcessTemplate constrains process specs via attribute templates.
type ProcessTemplate struct {
	baseObject
	Conditions []Ref
	Parameters []Ref
}

// NewProcessTemplate creates a process template with the given name.
func NewProcessTemplate(name string) *ProcessTemplate {
	return &ProcessTemplate{baseObject: newBase(name)}
}

func (o *ProcessTemplate) TypeTag() ObjectType { return TypeProcessTemplate }

func (o *ProcessTemplate) Dependencies() []Ref {
	return presentRefs(append(append([]Ref{}, o.Conditions...), o.Parameters...)...)
}

func (o *ProcessTemplate) wireFields() (map[string]any, error) {
	return refListFields(map[string][]Ref{
		"conditions": o.Conditions,
		"parameters": o.Parameters,
	})
}

// WithUID records an identity key and returns the template for chaining.
func (o *ProcessTemplate) WithUID(scope, id string) *ProcessTemplate {
	o.AddUID(scope, id)
	return o
}

// MeasurementTemplate constrains measurement specs via attribute templates.
type MeasurementTemplate struct {
	baseObject
	Properties []Ref
	Conditions []Ref
	Parameters []Ref
}

// NewMeasurementTemplate creates a measurement template with the given name.
func NewMeasurementTemplate(name string) *MeasurementTemplate {
	return &MeasurementTemplate{baseObject: newBase(name)}
}

func (o *MeasurementTemplate) TypeTag() ObjectType { return TypeMeasurementTemplate }

func (o *MeasurementTemplate) Dependencies() []Ref {
	all := append(append(append([]Ref{}, o.Properties...), o.Conditions...), o.Parameters...)
	return presentRefs(all...)
}

func (o *MeasurementTemplate) wireFields() (map[string]any, error) {
	return refListFields(map[string][]Ref{
		"properties": o.Properties,
		"conditions": o.Conditions,
		"parameters": o.Parameters,
	})
}

// WithUID records an identity key and returns the template for chaining.
func (o *MeasurementTemplate) WithUID(scope, id string) *MeasurementTemplate {
	o.AddUID(scope, id)
	return o
}

// ProcessSpec describes an intended process.
type ProcessSpec struct {
	baseObject
	Template Ref
}

// NewProcessSpec creates a process spec with the given name.
func NewProcessSpec(name string) *ProcessSpec {
	return &ProcessSpec{baseObject: newBase(name)}
}

func (o *ProcessSpec) TypeTag() ObjectType { return TypeProcessSpec }

func (o *ProcessSpec) Dependencies() []Ref { return presentRefs(o.Template) }

func (o *ProcessSpec) wireFields() (map[string]any, error) {
	return refFields(map[string]Ref{"template": o.Template})
}

// WithUID records an identity key and returns the spec for chaining.
func (o *ProcessSpec) WithUID(scope, id string) *ProcessSpec {
	o.AddUID(scope, id)
	return o
}

// WithTemplate sets the process template reference and returns the spec.
func (o *ProcessSpec) WithTemplate(t Ref) *ProcessSpec {
	o.Template = t
	return o
}

// MaterialSpec describes an intended material, produced by a process spec.
type MaterialSpec struct {
	baseObject
	Template Ref
	Process  Ref
}

// NewMaterialSpec creates a material spec with the given name.
func NewMaterialSpec(name string) *MaterialSpec {
	return &MaterialSpec{baseObject: newBase(name)}
}

func (o *MaterialSpec) TypeTag() ObjectType { return TypeMaterialSpec }

func (o *MaterialSpec) Dependencies() []Ref { return presentRefs(o.Template, o.Process) }

func (o *MaterialSpec) wireFields() (map[string]any, error) {
	return refFields(map[string]Ref{"template": o.Template, "process": o.Process})
}

// WithUID records an identity key and returns the spec for chaining.
func (o *MaterialSpec) WithUID(scope, id string) *MaterialSpec {
	o.AddUID(scope, id)
	return o
}

// WithTemplate sets the material template reference and returns the spec.
func (o *MaterialSpec) WithTemplate(t Ref) *MaterialSpec {
	o.Template = t
	return o
}

// WithProcess sets the producing process spec and returns the spec.
func (o *MaterialSpec) WithProcess(p Ref) *MaterialSpec {
	o.Process = p
	return o
}

// MeasurementSpec describes an intended measurement.
type MeasurementSpec struct {
	baseObject
	Template Ref
}

// NewMeasurementSpec creates a measurement spec with the given name.
func NewMeasurementSpec(name string) *MeasurementSpec {
	return &MeasurementSpec{baseObject: newBase(name)}
}

func (o *MeasurementSpec) TypeTag() ObjectType { return TypeMeasurementSpec }

func (o *MeasurementSpec) Dependencies() []Ref { return presentRefs(o.Template) }

func (o *MeasurementSpec) wireFields() (map[string]any, error) {
	return refFields(map[string]Ref{"template": o.Template})
}

// WithUID records an identity key and returns the spec for chaining.
func (o *MeasurementSpec) WithUID(scope, id string) *MeasurementSpec {
	o.AddUID(scope, id)
	return o
}

// WithTemplate sets the measurement template reference and returns the spec.
func (o *MeasurementSpec) WithTemplate(t Ref) *MeasurementSpec {
	o.Template = t
	return o
}

// ProcessRun records a process that actually happened.
type ProcessRun struct {
	baseObject
	Spec Ref
}

// NewProcessRun creates a process run with the given name.
func NewProcessRun(name string) *ProcessRun {
	return &ProcessRun{baseObject: newBase(name)}
}

func (o *ProcessRun) TypeTag() ObjectType { return TypeProcessRun }

func (o *ProcessRun) Dependencies() []Ref { return presentRefs(o.Spec) }

func (o *ProcessRun) wireFields() (map[string]any, error) {
	return refFields(map[string]Ref{"spec": o.Spec})
}

// WithUID records an identity key and returns the run for chaining.
func (o *ProcessRun) WithUID(scope, id string) *ProcessRun {
	o.AddUID(scope, id)
	return o
}

// WithSpec sets the process spec reference and returns the run.
func (o *ProcessRun) WithSpec(s Ref) *ProcessRun {
	o.Spec = s
	return o
}

// MaterialRun records a material that was actually produced.
type MaterialRun struct {
	baseObject
	Spec    Ref
	Process Ref
}

// NewMaterialRun creates a material run with the given name.
func NewMaterialRun(name string) *MaterialRun {
	return &MaterialRun{baseObject: newBase(name)}
}

func (o *MaterialRun) TypeTag() ObjectType { return TypeMaterialRun }

func (o *MaterialRun) Dependencies() []Ref { return presentRefs(o.Spec, o.Process) }

func (o *MaterialRun) wireFields() (map[string]any, error) {
	return refFields(map[string]Ref{"spec": o.Spec, "process": o.Process})
}

// WithUID records an identity key and returns the run for chaining.
func (o *MaterialRun) WithUID(scope, id string) *MaterialRun {
	o.AddUID(scope, id)
	return o
}

// WithSpec sets the material spec reference and returns the run.
func (o *MaterialRun) WithSpec(s Ref) *MaterialRun {
	o.Spec = s
	return o
}

// WithProcess sets the producing process run and returns the run.
func (o *MaterialRun) WithProcess(p Ref) *MaterialRun {
	o.Process = p
	return o
}

// MeasurementRun records a measurement performed on a material run.
type MeasurementRun struct {
	baseObject
	Spec     Ref
	Material Ref
}

// NewMeasurementRun creates a measurement run with the given name.
func NewMeasurementRun(name string) *MeasurementRun {
	return &MeasurementRun{baseObject: newBase(name)}
}

func (o *MeasurementRun) TypeTag() ObjectType { return TypeMeasurementRun }

func (o *MeasurementRun) Dependencies() []Ref { return presentRefs(o.Spec, o.Material) }

func (o *MeasurementRun) wireFields() (map[string]any, error) {
	return refFields(map[string]Ref{"spec": o.Spec, "material": o.Material})
}

// WithUID records an identity key and returns the run for chaining.
func (o *MeasurementRun) WithUID(scope, id string) *MeasurementRun {
	o.AddUID(scope, id)
	return o
}

// WithSpec sets the measurement spec reference and returns the run.
func (o *MeasurementRun) WithSpec(s Ref) *MeasurementRun {
	o.Spec = s
	return o
}

// WithMaterial sets the measured material run and returns the run.
func (o *MeasurementRun) WithMaterial(m Ref) *MeasurementRun {
	o.Material = m
	return o
}

// IngredientSpec binds a material spec into the process spec that
// consumes it.
type IngredientSpec struct {
	baseObject
	Material Ref
	Process  Ref
}

// NewIngredientSpec creates an ingredient spec with the given name.
func NewIngredientSpec(name string) *IngredientSpec {
	return &IngredientSpec{baseObject: newBase(name)}
}

func (o *IngredientSpec) TypeTag() ObjectType { return TypeIngredientSpec }

func (o *IngredientSpec) Dependencies() []Ref { return presentRefs(o.Material, o.Process) }

func (o *IngredientSpec) wireFields() (map[string]any, error) {
	return refFields(map[string]Ref{"material": o.Material, "process": o.Process})
}

// WithUID records an identity key and returns the ingredient for chaining.
func (o *IngredientSpec) WithUID(scope, id string) *IngredientSpec {
	o.AddUID(scope, id)
	return o
}

// WithMaterial sets the consumed material spec and returns the ingredient.
func (o *IngredientSpec) WithMaterial(m Ref) *IngredientSpec {
	o.Material = m
	return o
}

// WithProcess sets the consuming process spec and returns the ingredient.
func (o *IngredientSpec) WithProcess(p Ref) *IngredientSpec {
	o.Process = p
	return o
}

// IngredientRun binds a material run into the process run that consumed it.
type IngredientRun struct {
	baseObject
	Spec     Ref
	Material Ref
	Process  Ref
}

// NewIngredientRun creates an ingredient run with the given name.
func NewIngredientRun(name string) *IngredientRun {
	return &IngredientRun{baseObject: newBase(name)}
}

func (o *IngredientRun) TypeTag() ObjectType { return TypeIngredientRun }

func (o *IngredientRun) Dependencies() []Ref { return presentRefs(o.Spec, o.Material, o.Process) }

func (o *IngredientRun) wireFields() (map[string]any, error) {
	return refFields(map[string]Ref{"spec": o.Spec, "material": o.Material, "process": o.Process})
}

// WithUID records an identity key and returns the ingredient for chaining.
func (o *IngredientRun) WithUID(scope, id string) *IngredientRun {
	o.AddUID(scope, id)
	return o
}

// WithSpec sets the ingredient spec reference and returns the ingredient.
func (o *IngredientRun) WithSpec(s Ref) *IngredientRun {
	o.Spec = s
	return o
}

// WithMaterial sets the consumed material run and returns the ingredient.
func (o *IngredientRun) WithMaterial(m Ref) *IngredientRun {
	o.Material = m
	return o
}

// WithProcess sets the consuming process run and returns the ingredient.
func (o *IngredientRun) WithProcess(p Ref) *IngredientRun {
	o.Process = p
	return o
}
