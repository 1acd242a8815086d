package voice

type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

var DefaultRange = Range{Min: 0, Max: 9}

func (r Range) Clamp(value int) int {
	return min(max(value, r.Min), r.Max)
}

// Format is the only container requested from vendors.
const Format = "wav"

// Params are vendor-facing synthesis parameters.
type Params struct {
	Voice string

	Speed  int
	Volume int

	Format string
}

// Normalizer turns a user voice selection into vendor parameters.
// It never fails: unknown voices fall back to the catalog default and
// out-of-range values are clamped.
type Normalizer struct {
	catalog *Catalog

	speed  Range
	volume Range
}

func NewNormalizer(catalog *Catalog, speed, volume Range) *Normalizer {
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	return &Normalizer{
		catalog: catalog,

		speed:  speed,
		volume: volume,
	}
}

func (n *Normalizer) Catalog() *Catalog {
	return n.catalog
}

// WithCatalog returns a normalizer using another catalog with the same ranges.
// Vendor identifiers known to the current catalog win over those of the new one.
func (n *Normalizer) WithCatalog(catalog *Catalog) *Normalizer {
	if catalog == nil {
		return n
	}

	vendors := map[string]string{}

	for _, v := range n.catalog.voices {
		if v.Vendor != "" {
			vendors[v.ID] = v.Vendor
		}
	}

	return &Normalizer{
		catalog: catalog.WithVendors(vendors),

		speed:  n.speed,
		volume: n.volume,
	}
}

func (n *Normalizer) Normalize(config Config) Params {
	v, ok := n.catalog.Lookup(config.VoiceID)

	if !ok {
		v = n.catalog.Default()
	}

	vendor := v.Vendor

	if vendor == "" {
		vendor = v.ID
	}

	return Params{
		Voice: vendor,

		Speed:  n.speed.Clamp(config.Speed),
		Volume: n.volume.Clamp(config.Volume),

		Format: Format,
	}
}
