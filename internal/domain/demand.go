package domain

// EndpointType is one of the four physical media a demand may request.
type EndpointType string

const (
	EndpointMMFLCDuplex EndpointType = "mmf_lc_duplex"
	EndpointSMFLCDuplex EndpointType = "smf_lc_duplex"
	EndpointMPO12       EndpointType = "mpo12"
	EndpointUTPRJ45     EndpointType = "utp_rj45"
)

// KnownEndpointTypes is the closed set of endpoint_type tokens the
// validator accepts.
var KnownEndpointTypes = map[EndpointType]bool{
	EndpointMMFLCDuplex: true,
	EndpointSMFLCDuplex: true,
	EndpointMPO12:       true,
	EndpointUTPRJ45:     true,
}

// Demand is a single declared connectivity requirement between two racks.
// Demands are symmetric: a demand from A to B and one from B to A of the
// same media are merged by the normalizer, not treated as opposing flows.
type Demand struct {
	ID           string       `json:"id"`
	Src          string       `json:"src"`
	Dst          string       `json:"dst"`
	EndpointType EndpointType `json:"endpoint_type"`
	Count        int          `json:"count"`
}
