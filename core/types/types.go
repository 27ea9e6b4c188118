// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

// JobType identifies the kind of electrical job being estimated
type JobType string

const (
	JobNewConstruction JobType = "new_construction"
	JobAddition        JobType = "addition"
	JobCommercial      JobType = "commercial"
	JobRenovation      JobType = "renovation"
	JobServiceUpgrade  JobType = "service_upgrade"
	JobServiceRepair   JobType = "service_repair"
)

// String returns the string representation of the job type
func (j JobType) String() string {
	return string(j)
}

// IsValid checks if the job type is a known job type
func (j JobType) IsValid() bool {
	switch j {
	case JobNewConstruction, JobAddition, JobCommercial, JobRenovation, JobServiceUpgrade, JobServiceRepair:
		return true
	default:
		return false
	}
}

// DeviceCategory classifies an assembly for labour splitting and BOM rollups
type DeviceCategory string

const (
	CategoryReceptacles DeviceCategory = "receptacles"
	CategorySwitches    DeviceCategory = "switches"
	CategoryLighting    DeviceCategory = "lighting"
	CategorySafety      DeviceCategory = "safety"
	CategoryDataComm    DeviceCategory = "data_comm"
	CategoryAppliance   DeviceCategory = "appliance"
	CategoryService     DeviceCategory = "service"
	CategoryRough       DeviceCategory = "rough"
	CategorySpecialty   DeviceCategory = "specialty"
)

// String returns the string representation of the category
func (c DeviceCategory) String() string {
	return string(c)
}

// DeviceCategories returns every category in display order
func DeviceCategories() []DeviceCategory {
	return []DeviceCategory{
		CategoryReceptacles, CategorySwitches, CategoryLighting, CategorySafety,
		CategoryDataComm, CategoryAppliance, CategoryService, CategoryRough, CategorySpecialty,
	}
}

// PartCategory classifies an entry of the parts catalog
type PartCategory string

const (
	PartBox            PartCategory = "box"
	PartDevice         PartCategory = "device"
	PartCoverPlate     PartCategory = "cover_plate"
	PartConnector      PartCategory = "connector"
	PartWireNut        PartCategory = "wire_nut"
	PartMounting       PartCategory = "mounting"
	PartBreaker        PartCategory = "breaker"
	PartPanelComponent PartCategory = "panel_component"
	PartMisc           PartCategory = "misc"
)

// String returns the string representation of the part category
func (c PartCategory) String() string {
	return string(c)
}

// IsValid checks if the part category is known
func (c PartCategory) IsValid() bool {
	switch c {
	case PartBox, PartDevice, PartCoverPlate, PartConnector, PartWireNut,
		PartMounting, PartBreaker, PartPanelComponent, PartMisc:
		return true
	default:
		return false
	}
}

// UnassignedWireType is the bucket for line items without a wire type
const UnassignedWireType = "Unassigned"
