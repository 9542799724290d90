package domain

// CableType distinguishes the two physical cable families the allocator
// produces.
type CableType string

const (
	CableMPO12Trunk CableType = "mpo12_trunk"
	CableUTP        CableType = "utp_cable"
)

// PolarityType is the trunk-level wiring convention for MPO-12 cables.
type PolarityType string

const (
	PolarityTypeA PolarityType = "A"
	PolarityTypeB PolarityType = "B"
)

// Cable is one physical trunk referenced by one or more sessions.
type Cable struct {
	CableID      string       `json:"cable_id"`
	CableType    CableType    `json:"cable_type"`
	FiberKind    FiberKind    `json:"fiber_kind,omitempty"`
	PolarityType PolarityType `json:"polarity_type,omitempty"`
	SrcRack      string       `json:"src_rack"`
	DstRack      string       `json:"dst_rack"`
}
