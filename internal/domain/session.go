package domain

// Face is always "front" in this system: user-visible terminations live on
// the front of every module, trunks (which never become sessions) ride the
// back.
const Face = "front"

// Endpoint is one side of a Session: a specific port on a specific module.
type Endpoint struct {
	Rack string `json:"rack"`
	Face string `json:"face"`
	U    int    `json:"u"`
	Slot int    `json:"slot"`
	Port int    `json:"port"`
}

// Session is one logical endpoint-to-endpoint connection: a single fiber
// pair (or copper pair) riding a specific cable between two specific ports.
type Session struct {
	SessionID   string       `json:"session_id"`
	Media       EndpointType `json:"media"`
	CableID     string       `json:"cable_id"`
	AdapterType ModuleType   `json:"adapter_type"`
	LabelA      string       `json:"label_a"`
	LabelB      string       `json:"label_b"`
	Src         Endpoint     `json:"src"`
	Dst         Endpoint     `json:"dst"`
	FiberA      *int         `json:"fiber_a,omitempty"`
	FiberB      *int         `json:"fiber_b,omitempty"`
	Notes       string       `json:"notes,omitempty"`
}
