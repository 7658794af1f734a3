package ntru

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSHA256DigestIdentity(t *testing.T) {
	d := NewSHA256Digest()
	require.Equal(t, "SHA-256", d.AlgorithmName())
	require.Equal(t, 32, d.Size())
	d.Update([]byte("hello"))
	d.Update([]byte(" world"))
	out1 := d.Finalize()
	require.Len(t, out1, 32)

	d.Reset()
	d.Update([]byte("hello"))
	d.Update([]byte(" world"))
	out2 := d.Finalize()
	require.Equal(t, out1, out2)
}

func TestSHA512DigestSize(t *testing.T) {
	d := NewSHA512Digest()
	require.Equal(t, "SHA-512", d.AlgorithmName())
	require.Equal(t, 64, d.Size())
}

func TestBLAKE3DigestSize(t *testing.T) {
	d := NewBLAKE3Digest()
	require.Equal(t, "BLAKE3", d.AlgorithmName())
	require.Equal(t, 32, d.Size())
	d.Update([]byte("x"))
	require.Len(t, d.Finalize(), 32)
}

func TestDefaultDigestFactoryResolvesKnownNames(t *testing.T) {
	for _, name := range []string{"SHA-256", "SHA-512", "BLAKE3"} {
		d, err := DefaultDigestFactory(name)
		require.NoError(t, err)
		require.Equal(t, name, d.AlgorithmName())
	}
}

func TestDefaultDigestFactoryRejectsUnknownName(t *testing.T) {
	_, err := DefaultDigestFactory("MD5")
	require.Error(t, err)
}
