package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildSampleInterest(t *testing.T) []byte {
	t.Helper()
	name := EncodeName([][]byte{[]byte("foo"), []byte("bar")})
	msg := BuildInterest([][]byte{[]byte("foo"), []byte("bar")}, []byte{0x01, 0x02})
	require.Greater(t, len(msg), len(name))
	return msg
}

func TestDecoderWholeMessage(t *testing.T) {
	msg := buildSampleInterest(t)
	var d Decoder
	consumed := d.Decode(msg)
	require.Equal(t, len(msg), consumed)
	require.Equal(t, 0, d.State)
	require.Equal(t, len(msg), d.Index)
}

func TestDecoderByteAtATime(t *testing.T) {
	msg := buildSampleInterest(t)
	var d Decoder
	total := 0
	for i := 0; i < len(msg); i++ {
		n := d.Decode(msg[i : i+1])
		require.Equal(t, 1, n)
		total++
		if i < len(msg)-1 {
			require.NotEqual(t, 0, d.State)
		}
	}
	require.Equal(t, len(msg), total)
	require.Equal(t, 0, d.State)
	require.Equal(t, len(msg), d.Index)
}

func TestDecoderTwoMessagesBackToBack(t *testing.T) {
	msg1 := buildSampleInterest(t)
	msg2 := BuildInterest([][]byte{[]byte("baz")}, nil)
	stream := append(append([]byte{}, msg1...), msg2...)

	var d Decoder
	consumed := d.Decode(stream)
	require.Equal(t, len(msg1), consumed)
	require.Equal(t, 0, d.State)

	consumed2 := d.Decode(stream[consumed:])
	require.Equal(t, len(msg2), consumed2)
	require.Equal(t, 0, d.State)
}

func TestDecoderArbitraryFragmentation(t *testing.T) {
	msg := buildSampleInterest(t)
	chunkSizes := []int{3, 1, 0, 5, 2, 100}
	var d Decoder
	pos := 0
	for _, sz := range chunkSizes {
		end := pos + sz
		if end > len(msg) {
			end = len(msg)
		}
		consumed := d.Decode(msg[pos:end])
		pos += consumed
		if pos >= len(msg) {
			break
		}
	}
	require.Equal(t, len(msg), pos)
	require.Equal(t, 0, d.State)
}
