package wire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCheckNameBuf(t *testing.T) {
	good := EncodeName([][]byte{[]byte("a")})
	require.NoError(t, CheckNameBuf(good))

	require.ErrorIs(t, CheckNameBuf(nil), ErrInvalidName)
	require.ErrorIs(t, CheckNameBuf([]byte{0x00}), ErrInvalidName)
	require.ErrorIs(t, CheckNameBuf([]byte{openByte(TypeInterest), markClose}), ErrInvalidName)
}

func TestParseInterestRoundTrip(t *testing.T) {
	comps := [][]byte{[]byte("foo"), []byte("bar"), []byte("baz")}
	msg := BuildInterest(comps, []byte{0xAA, 0xBB})

	idx, err := ParseInterest(msg)
	require.NoError(t, err)
	require.Equal(t, 3, idx.N())

	for i, c := range comps {
		key := idx.Key(msg, i+1)
		// the key for i+1 components should end with component i's bytes
		require.Contains(t, string(key), string(c))
	}

	_, err = ParseContentObject(msg)
	require.ErrorIs(t, err, ErrNotContentObject)
}

func TestParseInterestEmptyName(t *testing.T) {
	msg := BuildInterest(nil, nil)
	idx, err := ParseInterest(msg)
	require.NoError(t, err)
	require.Equal(t, 0, idx.N())
}

func TestExtractTemplate(t *testing.T) {
	comps := [][]byte{[]byte("x")}
	trailer := []byte{0x01, 0x02, 0x03}
	template := BuildInterest(comps, trailer)

	gotComps, gotTrailer, err := ExtractTemplate(template)
	require.NoError(t, err)
	require.Equal(t, trailer, gotTrailer)
	require.NotEmpty(t, gotComps)
}

func TestExtractTemplateNotInterest(t *testing.T) {
	name := EncodeName([][]byte{[]byte("a")})
	msg := make([]byte, 0, len(name)+2)
	msg = append(msg, openByte(TypeContentObject))
	msg = append(msg, name...)
	msg = append(msg, markClose)

	_, _, err := ExtractTemplate(msg)
	require.ErrorIs(t, err, ErrNotInterest)
}

func TestParseContentObject(t *testing.T) {
	name := EncodeName([][]byte{[]byte("foo")})
	content := []byte{markBlob, 0x03, 'h', 'i', '!'}
	msg := make([]byte, 0, len(name)+len(content)+2)
	msg = append(msg, openByte(TypeContentObject))
	msg = append(msg, name...)
	msg = append(msg, content...)
	msg = append(msg, markClose)

	idx, err := ParseContentObject(msg)
	require.NoError(t, err)
	require.Equal(t, 1, idx.N())

	_, err = ParseInterest(msg)
	require.ErrorIs(t, err, ErrNotInterest)
}

func TestBuildContentObjectRoundTrip(t *testing.T) {
	comps := [][]byte{[]byte("foo"), []byte("bar")}
	msg := BuildContentObject(comps, []byte("hello"), nil)

	idx, err := ParseContentObject(msg)
	require.NoError(t, err)
	require.Equal(t, 2, idx.N())

	_, err = ParseInterest(msg)
	require.ErrorIs(t, err, ErrNotInterest)
}

func TestBuildContentObjectWithSignature(t *testing.T) {
	comps := [][]byte{[]byte("signed")}
	msg := BuildContentObject(comps, []byte("payload"), []byte{0xDE, 0xAD, 0xBE, 0xEF})

	idx, err := ParseContentObject(msg)
	require.NoError(t, err)
	require.Equal(t, 1, idx.N())

	content, err := ExtractContent(msg)
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), content)
}

func TestExtractContentRejectsInterest(t *testing.T) {
	msg := BuildInterest([][]byte{[]byte("x")}, nil)
	_, err := ExtractContent(msg)
	require.ErrorIs(t, err, ErrNotContentObject)
}

func TestLifetimeTrailerRoundTrip(t *testing.T) {
	trailer := EncodeLifetimeTrailer(4 * time.Second)
	got, err := DecodeLifetimeTrailer(trailer)
	require.NoError(t, err)
	require.Equal(t, 4*time.Second, got)

	comps := [][]byte{[]byte("x")}
	template := BuildInterest(comps, trailer)
	_, gotTrailer, err := ExtractTemplate(template)
	require.NoError(t, err)
	roundTripped, err := DecodeLifetimeTrailer(gotTrailer)
	require.NoError(t, err)
	require.Equal(t, 4*time.Second, roundTripped)
}

func TestDecodeLifetimeTrailerRejectsNonBlob(t *testing.T) {
	_, err := DecodeLifetimeTrailer([]byte{0x01, 0x02})
	require.ErrorIs(t, err, ErrMalformed)
}

func TestComponentIndexPrefixKeys(t *testing.T) {
	comps := [][]byte{[]byte("a"), []byte("ab"), []byte("abc")}
	msg := BuildInterest(comps, nil)
	idx, err := ParseInterest(msg)
	require.NoError(t, err)

	k1 := idx.Key(msg, 1)
	k2 := idx.Key(msg, 2)
	k3 := idx.Key(msg, 3)
	require.True(t, len(k1) < len(k2))
	require.True(t, len(k2) < len(k3))
	// k1 must be a byte-prefix of k2, and k2 a byte-prefix of k3.
	require.Equal(t, k1, k2[:len(k1)])
	require.Equal(t, k2, k3[:len(k2)])
}
