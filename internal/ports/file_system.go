package ports

type AccessMode int

const (
	ReadWrite = iota
	ReadAllWriteOwner
)

type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, content []byte, accessMode AccessMode) error
	FileExists(path string) (bool, error)
	HomeDir() (string, error)
}
