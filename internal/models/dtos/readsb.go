package dtos

// ReadsbResponse is the envelope returned by readsb-derived aggregator APIs
// (airplanes.live, adsb.lol). See https://airplanes.live/api-guide/
type ReadsbResponse struct {
	Now      float64          `json:"now"`
	Aircraft []ReadsbAircraft `json:"ac"`
	Total    int              `json:"total"`
	Msg      string           `json:"msg"`
}

// ReadsbAircraft is a single aircraft record in the readsb JSON dialect.
// Almost every field is optional on the wire. AltBaro is `any` because the
// feed reports either feet as a number or the literal string "ground".
type ReadsbAircraft struct {
	Hex      string   `json:"hex"`
	Flight   string   `json:"flight"`
	Reg      string   `json:"r"`
	Type     string   `json:"t"`
	Desc     string   `json:"desc"`
	AltBaro  any      `json:"alt_baro"`
	AltGeom  *float64 `json:"alt_geom"`
	Gs       *float64 `json:"gs"`
	Track    *float64 `json:"track"`
	BaroRate *float64 `json:"baro_rate"`
	GeomRate *float64 `json:"geom_rate"`
	Squawk   string   `json:"squawk"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
	Seen     float64  `json:"seen"`
	SeenPos  float64  `json:"seen_pos"`
}
