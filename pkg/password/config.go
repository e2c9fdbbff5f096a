package password

// Config sets the argon2id cost. Defaults follow the RFC 9106 second
// recommendation scaled for interactive logins.
type Config struct {
	MemoryKiB   uint32 `env:"PASSWORD_ARGON2_MEMORY_KIB" envDefault:"65536"`
	Iterations  uint32 `env:"PASSWORD_ARGON2_ITERATIONS" envDefault:"3"`
	Parallelism uint8  `env:"PASSWORD_ARGON2_PARALLELISM" envDefault:"2"`
	SaltLength  uint32 `env:"PASSWORD_ARGON2_SALT_LEN" envDefault:"16"`
	KeyLength   uint32 `env:"PASSWORD_ARGON2_KEY_LEN" envDefault:"32"`
	Pepper      string `env:"PASSWORD_PEPPER"`
}

// DefaultConfig returns the defaults from the struct tags.
func DefaultConfig() Config {
	return Config{
		MemoryKiB:   64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MemoryKiB == 0 {
		c.MemoryKiB = d.MemoryKiB
	}
	if c.Iterations == 0 {
		c.Iterations = d.Iterations
	}
	if c.Parallelism == 0 {
		c.Parallelism = d.Parallelism
	}
	if c.SaltLength == 0 {
		c.SaltLength = d.SaltLength
	}
	if c.KeyLength == 0 {
		c.KeyLength = d.KeyLength
	}
	return c
}
