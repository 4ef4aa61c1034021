package types

// Address captures the delivery/pickup location details carried on orders
// and bookings. Stored as JSONB.
type Address struct {
	Name        string  `json:"name,omitempty"`
	Mobile      string  `json:"mobile,omitempty"`
	AddressLine string  `json:"address_line,omitempty"`
	City        string  `json:"city,omitempty"`
	State       string  `json:"state,omitempty"`
	Pincode     string  `json:"pincode,omitempty"`
	Landmark    string  `json:"landmark,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
}
