package domain

// ModuleType identifies one of the three fixed module families. The set is
// closed: allocators never invent a fourth kind.
type ModuleType string

const (
	ModuleLCBreakout     ModuleType = "lc_breakout_2xmpo12_to_12xlcduplex"
	ModuleMPOPassThrough ModuleType = "mpo12_pass_through_12port"
	ModuleUTP            ModuleType = "utp_6xrj45"
)

// FiberKind distinguishes multimode from singlemode fiber plant. Only
// meaningful for LC breakout modules and their trunks/sessions.
type FiberKind string

const (
	FiberMMF FiberKind = "mmf"
	FiberSMF FiberKind = "smf"
)

// PolarityVariant is the module-side wiring convention.
type PolarityVariant string

const (
	PolarityA  PolarityVariant = "A"
	PolarityAF PolarityVariant = "AF"
)

// Module is one adapter cassette occupying exactly one slot of one panel.
type Module struct {
	RackID          string          `json:"rack_id"`
	PanelU          int             `json:"panel_u"`
	Slot            int             `json:"slot"`
	ModuleType      ModuleType      `json:"module_type"`
	FiberKind       FiberKind       `json:"fiber_kind,omitempty"`
	PolarityVariant PolarityVariant `json:"polarity_variant,omitempty"`
	PeerRackID      string          `json:"peer_rack_id,omitempty"`
	Dedicated       bool            `json:"dedicated"`
}
