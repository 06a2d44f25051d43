// Package embedded shows mocks of interfaces built from other interfaces.
package embedded

// Reader reads into a buffer.
type Reader interface {
	Read(p []byte) (n int, err error)
}

// Closer releases a resource.
type Closer interface {
	Close() error
}

// ReadCloser embeds the local Reader and Closer interfaces.
type ReadCloser interface {
	Reader
	Closer
}

// ProcessStream reads once from rc and then closes it, even when the read fails.
func ProcessStream(rc ReadCloser) (string, error) {
	buf := make([]byte, 10)

	n, err := rc.Read(buf)
	if err != nil {
		_ = rc.Close()

		return "", err
	}

	err = rc.Close()

	return string(buf[:n]), err
}
