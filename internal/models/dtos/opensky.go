package dtos

// OpenSkyResponse is the envelope of the OpenSky /states/all endpoint.
// Each state vector is a positional array:
//
//	[0]  icao24          string
//	[1]  callsign        string (blank-padded)
//	[5]  longitude       float64 or null
//	[6]  latitude        float64 or null
//	[7]  baro_altitude   float64 meters or null
//	[8]  on_ground       bool
//	[9]  velocity        float64 m/s or null
//	[10] true_track      float64 degrees or null
//	[11] vertical_rate   float64 m/s or null
//	[14] squawk          string or null
//
// See https://openskynetwork.github.io/opensky-api/rest.html
type OpenSkyResponse struct {
	Time   int64   `json:"time"`
	States [][]any `json:"states"`
}
