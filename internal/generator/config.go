package generator

// Config drives the synthetic data generator.
type Config struct {
	NumPersons      int
	NumMovies       int
	BiographyChance float64
	InfluenceChance float64
	MaxInfluences   int
	Seed            int64
}

// DefaultConfig returns baseline settings for a small but connected catalog.
func DefaultConfig() Config {
	return Config{
		NumPersons:      1000,
		NumMovies:       400,
		BiographyChance: 0.7,
		InfluenceChance: 0.5,
		MaxInfluences:   4,
		Seed:            42,
	}
}
