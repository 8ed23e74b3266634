package search

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"strings"
)

// Amenity is one entry of the fixed amenity vocabulary.
type Amenity string

const (
	AmenityWifi            Amenity = "wifi"
	AmenityParking         Amenity = "parking"
	AmenityAirConditioning Amenity = "air_conditioning"
	AmenityHeating         Amenity = "heating"
	AmenityWaterSupply     Amenity = "water_supply"
	AmenityLaundry         Amenity = "laundry"
	AmenityKitchen         Amenity = "kitchen"
	AmenityGym             Amenity = "gym"
	AmenitySwimmingPool    Amenity = "swimming_pool"
	AmenityGarden          Amenity = "garden"
	AmenityBalcony         Amenity = "balcony"
	AmenityElevator        Amenity = "elevator"
	AmenitySecurity        Amenity = "security"
	AmenityCCTV            Amenity = "cctv"
	AmenityPowerBackup     Amenity = "power_backup"
	AmenityPetFriendly     Amenity = "pet_friendly"
)

// Amenities lists the vocabulary in bit order. Appending is safe; reordering
// changes every stored mask.
var Amenities = []Amenity{
	AmenityWifi,
	AmenityParking,
	AmenityAirConditioning,
	AmenityHeating,
	AmenityWaterSupply,
	AmenityLaundry,
	AmenityKitchen,
	AmenityGym,
	AmenitySwimmingPool,
	AmenityGarden,
	AmenityBalcony,
	AmenityElevator,
	AmenitySecurity,
	AmenityCCTV,
	AmenityPowerBackup,
	AmenityPetFriendly,
}

var amenityBits = func() map[Amenity]AmenitySet {
	m := make(map[Amenity]AmenitySet, len(Amenities))
	for i, a := range Amenities {
		m[a] = 1 << uint(i)
	}
	return m
}()

// AmenitySet is a bitmask over Amenities.
type AmenitySet uint32

// ParseAmenity resolves a single token against the vocabulary.
func ParseAmenity(s string) (Amenity, bool) {
	a := Amenity(normalizeToken(s))
	_, ok := amenityBits[a]
	return a, ok
}

// NewAmenitySet builds a set from vocabulary tokens, failing on the first
// unknown one.
func NewAmenitySet(tokens ...string) (AmenitySet, error) {
	var set AmenitySet
	for _, token := range tokens {
		a, ok := ParseAmenity(token)
		if !ok {
			return 0, fmt.Errorf("unknown amenity %q", strings.TrimSpace(token))
		}
		set |= amenityBits[a]
	}
	return set, nil
}

func (s AmenitySet) Has(a Amenity) bool {
	bit, ok := amenityBits[a]
	return ok && s&bit != 0
}

// Matches reports whether s contains every amenity in required.
func (s AmenitySet) Matches(required AmenitySet) bool {
	return s&required == required
}

func (s AmenitySet) Len() int {
	return bits.OnesCount32(uint32(s))
}

func (s AmenitySet) IsEmpty() bool {
	return s == 0
}

// List returns the members in vocabulary order.
func (s AmenitySet) List() []Amenity {
	out := make([]Amenity, 0, s.Len())
	for i, a := range Amenities {
		if s&(1<<uint(i)) != 0 {
			out = append(out, a)
		}
	}
	return out
}

func (s AmenitySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}

func (s *AmenitySet) UnmarshalJSON(data []byte) error {
	var tokens []string
	if err := json.Unmarshal(data, &tokens); err != nil {
		return err
	}
	set, err := NewAmenitySet(tokens...)
	if err != nil {
		return err
	}
	*s = set
	return nil
}
