package ports

// Keyring reads and stores secrets in the OS credential store. Used as a
// fallback source for registry credentials when the environment variables
// are unset.
type Keyring interface {
	GetKey(keyName string) (string, error)
	SetKey(keyName string, keyValue string) error
	HasKey(keyName string) (bool, error)
}
